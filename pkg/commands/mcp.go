package commands

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"tableflip.dev/bento/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	var (
		transport string
		h         mcp.HTTP
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that exposes the day's plan and the packing flow
(extract, size, resolve overflow) through the Model Context Protocol.`,
		Example: `
bento mcp --transport stdio
bento mcp --http-port 0
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			t, err := mcp.ParseTransport(transport)
			if err != nil {
				return err
			}
			if t == mcp.TransportHTTP {
				h.OnListening = func(_ net.Addr, url string) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP HTTP server listening on %s\n", url)
				}
			}

			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			r := mcp.Runner{
				Service:   s.Service,
				Name:      "bento",
				Version:   buildVersion(),
				Transport: t,
				HTTP:      h,
			}
			return r.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportHTTP), "transport to use: http or stdio")
	cmd.Flags().StringVar(&h.Host, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&h.Port, "http-port", 8080, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&h.Path, "http-path", "/mcp", "HTTP endpoint path")
	cmd.Flags().StringVar(&h.Cert, "http-tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&h.Key, "http-tls-key", "", "TLS private key file for HTTPS")

	topLevel.AddCommand(cmd)
}
