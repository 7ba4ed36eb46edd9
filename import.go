package main

import (
	"fmt"
	"os"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/solorad/blog-posts/server/pkg/blog"
	"github.com/solorad/blog-posts/server/pkg/log"
	"github.com/spf13/cobra"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Bulk load blog posts from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return errors.Trace(err)
			}
			defer f.Close()
			posts, err := blog.DecodeImport(f)
			if err != nil {
				return errors.Annotatef(err, "reading %s", args[0])
			}

			ctx := cmd.Context()
			store, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore(store)

			n, err := blog.NewBlogPostService(store, clock.WallClock).Import(ctx, posts)
			if err != nil {
				if n > 0 {
					log.Warningf("Stored %d of %d blog posts before the import failed", n, len(posts))
				}
				return err
			}
			log.Infof("Imported %d blog posts into the %s store", n, cfg.Store)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d posts\n", n)
			return nil
		},
	}
}
