package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"checklist.dev/pkg/checklist/internal/domain"
	m "checklist.dev/pkg/checklist/internal/model"
)

const (
	testIDFlagName = "test-id"
	targetFlagName = "target"
	fromFlagName   = "from"

	maxRecordLine = 1 << 20
)

// recordCmd represents the record command.
var recordCmd = newRecordCmd()

func newRecordCmd() *cobra.Command {
	var (
		testID string
		target string
		from   string
	)

	cmd := &cobra.Command{
		Use:   "record [TARGET]",
		Short: "Record the pointer of a completed test case",
		Long: `Record that a test case points at a target. The target is given either as
the positional argument or with --target, never both:

  pkg.mod:func            module-level function
  pkg.mod:Class.method    method, nested classes joined with dots
  pkg.mod:Class#prop      property, resolved like its getter
  pkg.mod.func            an already fully-qualified name

Without a target the test case carries no mark and nothing is recorded.

With --from, test cases are read as JSON lines instead ("-" for stdin):

  {"test_id": "tests/test_a.py::test_x", "mark": {"args": ["pkg.mod:func"]}}
  {"test_id": "tests/test_a.py::test_y", "mark": {"kwargs": {"target": "pkg.mod:Class.method"}}}`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				testCases []domain.TestCase
				err       error
			)

			switch {
			case from != "":
				if len(args) > 0 || target != "" || testID != "" {
					return errors.New("--from cannot be combined with a target or --test-id")
				}

				testCases, err = readRecordFile(cmd, from)
			default:
				testCases, err = recordFromFlags(testID, args, target, cmd.Flags().Changed(targetFlagName))
			}

			if err != nil {
				return err
			}

			return workflow.Record(contextOf(cmd), domain.RecordArgs{
				Ledger:    ledgerArgsFromConfig(),
				TestCases: testCases,
				Active:    sessionActive(),
				Disabled:  viper.GetBool(disabledKey),
			})
		},
	}

	cmd.Flags().StringVar(&testID, testIDFlagName, "", "id of the completed test case")
	cmd.Flags().StringVar(&target, targetFlagName, "", "target the test case points at")
	cmd.Flags().StringVar(&from, fromFlagName, "", "read test cases as JSON lines from this file")

	return cmd
}

func init() {
	rootCmd.AddCommand(recordCmd)
}

func recordFromFlags(testID string, args []string, target string, hasTarget bool) ([]domain.TestCase, error) {
	if strings.TrimSpace(testID) == "" {
		return nil, fmt.Errorf("--%s is required", testIDFlagName)
	}

	raw := recordedMark{Kwargs: map[string]string{}}
	raw.Args = append(raw.Args, args...)

	if hasTarget {
		raw.Kwargs[domain.TargetKwarg] = target
	}

	if len(raw.Args) == 0 && !hasTarget {
		return []domain.TestCase{{TestID: testID}}, nil
	}

	mark, err := raw.pointerMark()
	if err != nil {
		return nil, err
	}

	return []domain.TestCase{{TestID: testID, Mark: mark}}, nil
}

// recordedMark is the JSON form of a pointer mark.
type recordedMark struct {
	Args   []string          `json:"args,omitempty"`
	Kwargs map[string]string `json:"kwargs,omitempty"`
}

type recordedTestCase struct {
	TestID string        `json:"test_id"`
	Mark   *recordedMark `json:"mark,omitempty"`
}

// pointerMark parses the target references of the mark. Keyword arguments
// other than target are not pointer targets and are skipped.
func (r recordedMark) pointerMark() (*m.PointerMark, error) {
	mark := &m.PointerMark{Kwargs: map[string]m.TargetRef{}}

	for _, arg := range r.Args {
		ref, err := m.ParseTargetRef(arg)
		if err != nil {
			return nil, err
		}

		mark.Args = append(mark.Args, ref)
	}

	if text, ok := r.Kwargs[domain.TargetKwarg]; ok {
		ref, err := m.ParseTargetRef(text)
		if err != nil {
			return nil, err
		}

		mark.Kwargs[domain.TargetKwarg] = ref
	}

	return mark, nil
}

func readRecordFile(cmd *cobra.Command, path string) ([]domain.TestCase, error) {
	if path == "-" {
		return parseRecordLines(cmd.InOrStdin())
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return parseRecordLines(f)
}

func parseRecordLines(r io.Reader) ([]domain.TestCase, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordLine)

	var testCases []domain.TestCase

	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var raw recordedTestCase
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		if raw.TestID == "" {
			return nil, fmt.Errorf("line %d: missing test_id", lineNo)
		}

		testCase := domain.TestCase{TestID: raw.TestID}

		if raw.Mark != nil {
			mark, err := raw.Mark.pointerMark()
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}

			testCase.Mark = mark
		}

		testCases = append(testCases, testCase)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read test cases: %w", err)
	}

	return testCases, nil
}
