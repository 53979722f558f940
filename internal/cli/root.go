package cli

import (
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yigit/studentreg/internal/client"
	"github.com/yigit/studentreg/internal/config"
	"github.com/yigit/studentreg/internal/pkg/logger"
)

// APIURLEnv overrides the default API address
const APIURLEnv = "STUDENTREG_API_URL"

type rootOptions struct {
	apiURL  string
	timeout time.Duration
	noColor bool
	verbose bool
	logger  zerolog.Logger
}

// NewRootCommand builds the roster command tree writing to out and reading
// answers from in.
func NewRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	opts := &rootOptions{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "roster",
		Short:         "Terminal front end for the student registration API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
			if opts.verbose {
				logger.Configure(logger.Config{Level: logger.DebugLevel, Pretty: true, Output: cmd.ErrOrStderr()})
				opts.logger = logger.Component("roster")
			}
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)

	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", config.GetEnv(APIURLEnv, client.DefaultBaseURL), "base URL of the API")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", config.GetEnvAsDuration("STUDENTREG_TIMEOUT", 15*time.Second), "per request timeout")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every API call")

	root.AddCommand(
		newListCommand(opts),
		newRegisterCommand(opts),
		newHealthCommand(opts),
		newHelloCommand(opts),
	)
	return root
}

func (o *rootOptions) client() *client.Client {
	return client.New(o.apiURL, client.WithTimeout(o.timeout), client.WithLogger(o.logger))
}
