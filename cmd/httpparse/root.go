package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/coregx/copattern"
	"github.com/coregx/copattern/grammars/httpmsg"
)

const (
	formatText  = "text"
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatTable = "table"
)

type params struct {
	format   string
	logLevel string
	crlf     bool
	scanners bool
	stats    bool
}

type rootCommand struct {
	cmd    *cobra.Command
	params params

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	code int
}

// result is the structured output for one input.
type result struct {
	Input   string           `json:"input" yaml:"input"`
	Matched bool             `json:"matched" yaml:"matched"`
	Message *httpmsg.Message `json:"message,omitempty" yaml:"message,omitempty"`
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *rootCommand {
	rc := &rootCommand{stdin: stdin, stdout: stdout, stderr: stderr}
	rc.cmd = &cobra.Command{
		Use:   "httpparse [file...]",
		Short: "Match HTTP messages with the copattern HTTP grammar",
		Long: `Match each file (or standard input, given "-" or no files) as one HTTP/1.x
message and print the start line, headers and body the grammar extracted.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindEnvironment(cmd)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			code, err := rc.run(args)
			rc.code = code
			return err
		},
	}

	flags := rc.cmd.Flags()
	flags.StringVarP(&rc.params.format, "format", "f", formatText, "output format: text, json, yaml or table")
	flags.StringVar(&rc.params.logLevel, "log-level", "warning", "log level: debug, info, warning or error")
	flags.BoolVar(&rc.params.crlf, "crlf", false, `convert bare "\n" line endings to "\r\n" before matching`)
	flags.BoolVar(&rc.params.scanners, "scanners", true, "use byte search kernels for until patterns")
	flags.BoolVar(&rc.params.stats, "stats", false, "log grammar statistics when done")

	rc.cmd.SetIn(stdin)
	rc.cmd.SetOut(stdout)
	rc.cmd.SetErr(stderr)
	return rc
}

func (rc *rootCommand) execute() int {
	if err := rc.cmd.Execute(); err != nil {
		fmt.Fprintln(rc.stderr, "httpparse:", err)
		return 2
	}
	return rc.code
}

func (rc *rootCommand) run(args []string) (int, error) {
	logger := logrus.New()
	logger.SetOutput(rc.stderr)
	level, err := logrus.ParseLevel(rc.params.logLevel)
	if err != nil {
		return 2, err
	}
	logger.SetLevel(level)

	switch rc.params.format {
	case formatText, formatJSON, formatYAML, formatTable:
	default:
		return 2, fmt.Errorf("unknown format %q", rc.params.format)
	}

	config := copattern.DefaultConfig()
	config.EnableScanners = rc.params.scanners
	g, err := httpmsg.Compile(config)
	if err != nil {
		return 2, err
	}
	logger.WithField("grammar", g.String()).Debug("compiled grammar")

	if len(args) == 0 {
		args = []string{"-"}
	}

	var (
		results []result
		code    int
	)
	for _, name := range args {
		data, err := rc.read(name)
		if err != nil {
			return 2, err
		}
		if rc.params.crlf {
			data = toCRLF(data)
		}

		msg, ok := httpmsg.ParseWith(g, data)
		logger.WithFields(logrus.Fields{
			"input":   name,
			"bytes":   len(data),
			"matched": ok,
		}).Debug("matched input")
		if !ok {
			code = 1
		}

		if rc.params.format == formatText {
			writeText(rc.stdout, data, msg)
			continue
		}
		results = append(results, result{Input: name, Matched: ok, Message: msg})
	}

	switch rc.params.format {
	case formatJSON:
		enc := json.NewEncoder(rc.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return 2, err
		}
	case formatYAML:
		enc := yaml.NewEncoder(rc.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return 2, err
		}
		if err := enc.Close(); err != nil {
			return 2, err
		}
	case formatTable:
		writeTable(rc.stdout, results)
	}

	if rc.params.stats {
		s := g.Stats()
		logger.WithFields(logrus.Fields{
			"matches":          s.Matches,
			"misses":           s.Misses,
			"hook_vetoes":      s.HookVetoes,
			"scanner_searches": s.ScannerSearches,
		}).Info("grammar statistics")
	}

	return code, nil
}

func (rc *rootCommand) read(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(rc.stdin)
	}
	return os.ReadFile(name)
}

func toCRLF(b []byte) []byte {
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(b, []byte("\n"), []byte("\r\n"))
}

// writeText prints the input followed by the extracted fields.
func writeText(w io.Writer, raw []byte, msg *httpmsg.Message) {
	fmt.Fprintln(w, "====================================================================")
	fmt.Fprintf(w, "%s", raw)
	fmt.Fprintln(w, "===============")
	if msg == nil {
		fmt.Fprintln(w, "Has matched? NO")
		return
	}
	fmt.Fprintln(w, "Has matched? YES")
	fmt.Fprintf(w, "HTTP Version: %d.%d\n", msg.Major, msg.Minor)
	if msg.IsRequest() {
		fmt.Fprintln(w, "Type: Request")
		fmt.Fprintf(w, "Method: %s\n", msg.Request.Method)
		fmt.Fprintf(w, "Target: %s\n", msg.Request.Target)
	} else {
		fmt.Fprintln(w, "Type: Response")
		fmt.Fprintf(w, "Code: %s\n", msg.Response.StatusCode)
		fmt.Fprintf(w, "Message: %s\n", msg.Response.StatusMessage)
	}

	names := make([]string, 0, len(msg.Headers))
	for name := range msg.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "Headers: ")
	for _, name := range names {
		fmt.Fprintf(w, "- %s = %s\n", name, msg.Headers[name])
	}
	fmt.Fprintf(w, "Body: %s\n", msg.Body)
}

// writeTable prints one summary row per input.
func writeTable(w io.Writer, results []result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Input", "Matched", "Version", "Start Line", "Headers", "Body Bytes"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, r := range results {
		if r.Message == nil {
			table.Append([]string{r.Input, "no", "", "", "", ""})
			continue
		}
		m := r.Message
		var start string
		if m.IsRequest() {
			start = m.Request.Method + " " + m.Request.Target
		} else {
			start = m.Response.StatusCode + " " + m.Response.StatusMessage
		}
		table.Append([]string{
			r.Input,
			"yes",
			fmt.Sprintf("%d.%d", m.Major, m.Minor),
			start,
			strconv.Itoa(len(m.Headers)),
			strconv.Itoa(len(m.Body)),
		})
	}
	table.Render()
}
