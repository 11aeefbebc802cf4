package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/llehouerou/crudl-graphql/internal/blog"
)

// GraphQLPath is where serve mounts the blog API.
const GraphQLPath = "/graphql"

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo blog GraphQL API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := blog.NewStore()
			blog.Seed(store)
			schema, err := blog.NewSchema(store)
			if err != nil {
				return err
			}
			mux := http.NewServeMux()
			mux.Handle(GraphQLPath, blog.Handler(schema))

			srv := &http.Server{
				Addr:              a.cfg.Listen,
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			}
			return serve(cmd.Context(), a, srv)
		},
	}
	cmd.Flags().String("listen", "", "listen address (default :8080)")
	return cmd
}

// serve runs srv until ctx is done.
func serve(ctx context.Context, a *app, srv *http.Server) error {
	errc := make(chan error, 1)
	go func() {
		a.logger.Info().Str("addr", srv.Addr).Str("path", GraphQLPath).Msg("serving blog API")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.logger.Info().Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
