package main

import (
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"paper2code/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr, outputRoot string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run stages over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rn, err := a.newRunner(cmd.Context(), io.Discard)
			if err != nil {
				return err
			}
			if outputRoot == "" {
				outputRoot = a.cfg.OutputRoot
			}
			srv, err := server.New(rn, outputRoot, a.logger.Named("server"))
			if err != nil {
				return err
			}
			listen := a.cfg.ServerAddr
			if addr != "" {
				listen = addr
			}
			if listen == "" {
				listen = ":8080"
			}
			a.logger.Info("starting web server", zap.String("addr", listen), zap.String("output_root", outputRoot))
			return http.ListenAndServe(listen, srv.Routes())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "http listen address (overrides config server_addr)")
	cmd.Flags().StringVar(&outputRoot, "output_root", "", "directory that receives one sub-directory per run")
	return cmd
}
