package ffmpeg

import (
	"fmt"
	"strings"

	"splice/internal/graph"
	"splice/internal/media"
)

// Command is a complete ffmpeg invocation under construction: global
// flags, the input and output lists, and the filter graph wired between
// them. It is the only entity that triggers rendering and execution.
type Command struct {
	// Binary is the ffmpeg executable, "ffmpeg" by default.
	Binary string
	// LogLevel is passed to -loglevel.
	LogLevel string
	// Overwrite adds -y so existing output files are replaced.
	Overwrite bool

	g       *graph.Graph
	inputs  []*Input
	outputs []*Output
}

// New returns an empty command with an empty graph and default flags.
func New() *Command {
	return &Command{
		Binary:   "ffmpeg",
		LogLevel: "error",
		g:        graph.New(),
	}
}

// Graph returns the command's filter graph.
func (c *Command) Graph() *graph.Graph {
	return c.g
}

// AddInput appends an input file, assigning its position in the input
// list and the canonical labels of its streams.
func (c *Command) AddInput(in *Input) error {
	if err := in.register(len(c.inputs)); err != nil {
		return err
	}
	c.inputs = append(c.inputs, in)
	return nil
}

// AddOutput appends an output file.
func (c *Command) AddOutput(o *Output) error {
	for _, existing := range c.outputs {
		if existing.Path == o.Path {
			return fmt.Errorf("output %s declared twice", o.Path)
		}
	}
	c.outputs = append(c.outputs, o)
	return nil
}

// Inputs returns the declared inputs in order.
func (c *Command) Inputs() []*Input {
	return c.inputs
}

// Outputs returns the declared outputs in order.
func (c *Command) Outputs() []*Output {
	return c.outputs
}

// Codecs returns every codec of every output, in declaration order.
func (c *Command) Codecs() []*Codec {
	var codecs []*Codec
	for _, o := range c.outputs {
		codecs = append(codecs, o.codecs...)
	}
	return codecs
}

// Args renders the full argument vector, binary first. Rendering either
// completes for the whole command or fails; no partial vector is ever
// returned.
func (c *Command) Args() ([]string, error) {
	if len(c.inputs) == 0 {
		return nil, fmt.Errorf("command: no inputs declared")
	}
	if len(c.outputs) == 0 {
		return nil, fmt.Errorf("command: no outputs declared")
	}

	rendered, err := c.g.Render()
	if err != nil {
		return nil, err
	}

	args := []string{c.Binary, "-hide_banner", "-nostdin"}
	if c.LogLevel != "" {
		args = append(args, "-loglevel", c.LogLevel)
	}
	if c.Overwrite {
		args = append(args, "-y")
	}
	for _, in := range c.inputs {
		args = append(args, in.args()...)
	}
	if rendered.Text != "" {
		flag := "-filter_complex"
		if rendered.Short {
			flag = "-vf"
			if rendered.ChainKind == media.KindAudio {
				flag = "-af"
			}
		}
		args = append(args, flag, rendered.Text)
	}
	for _, o := range c.outputs {
		outputTokens, err := o.args(rendered)
		if err != nil {
			return nil, err
		}
		args = append(args, outputTokens...)
	}
	return args, nil
}

// String renders the command for display. Structural errors render as an
// error marker rather than a partial command line.
func (c *Command) String() string {
	args, err := c.Args()
	if err != nil {
		return fmt.Sprintf("<invalid command: %v>", err)
	}
	return strings.Join(args, " ")
}
