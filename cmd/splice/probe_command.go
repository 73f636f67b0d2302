package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"splice/internal/media"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var rawJSON bool

	cmd := &cobra.Command{
		Use:   "probe <file>...",
		Short: "Inspect media files and show their stream layout",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inspector, err := ctx.inspector()
			if err != nil {
				return err
			}
			defer ctx.closeCache()

			out := cmd.OutOrStdout()
			for _, path := range args {
				result, err := inspector.Inspect(cmd.Context(), path)
				if err != nil {
					return err
				}
				if rawJSON {
					out.Write(result.RawJSON())
					fmt.Fprintln(out)
					continue
				}

				rows := make([][]string, 0, len(result.Streams))
				for _, m := range result.Metadata() {
					rows = append(rows, metaRow(m))
				}
				fmt.Fprintf(out, "%s (%ss, %d stream(s))\n", path,
					media.TS(result.DurationSeconds()), len(result.Streams))
				fmt.Fprintln(out, renderTable(out,
					[]string{"Stream", "Kind", "Duration", "Detail", "Bitrate"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight},
				))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&rawJSON, "json", false, "Print the raw probe payload instead of a table")
	return cmd
}

func metaRow(m *media.Meta) []string {
	stream := ""
	if len(m.Streams) > 0 {
		stream = m.Streams[0]
	}
	detail := ""
	switch m.Kind {
	case media.KindVideo:
		detail = fmt.Sprintf("%dx%d @ %.3f fps", m.Width, m.Height, m.FrameRate)
	case media.KindAudio:
		detail = fmt.Sprintf("%d Hz, %d ch", m.SampleRate, m.Channels)
	}
	return []string{
		stream,
		m.Kind.String(),
		m.Duration.String(),
		detail,
		strconv.Itoa(m.Bitrate),
	}
}
