package main

import (
	"flag"

	"github.com/solorad/blog-posts/server/pkg/config"
	"github.com/solorad/blog-posts/server/pkg/log"
	"github.com/spf13/cobra"
)

func main() {
	// glog reads its flags from the standard flag set; cobra parses them.
	_ = flag.CommandLine.Parse([]string{})
	defer log.Flush()

	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("blog-server: %v", err)
	}
}

type rootOptions struct {
	configPath string
	store      string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "blog-server",
		Short:         "CRUD service for blog posts backed by a document store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a TOML config file")
	cmd.PersistentFlags().StringVar(&opts.store, "store", "", "document store: mongo, bolt or memory")
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	cmd.AddCommand(
		newServeCmd(opts),
		newImportCmd(opts),
	)
	return cmd
}

// loadConfig reads the config file and applies the root flag overrides.
func (o *rootOptions) loadConfig() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, err
	}
	if o.store != "" {
		cfg.Store = o.store
	}
	return cfg, nil
}
