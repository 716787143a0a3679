package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"opsdash/internal/server"
	"opsdash/internal/util"
)

func newServeCmd(opts *cliOptions) *cobra.Command {
	var (
		port    int
		devMode bool
		open    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			// 命令行端口仅在配置文件未显式指定时生效
			if port > 0 && !opts.info.PortSpecified {
				cfg.Server.Port = port
			}
			if devMode {
				cfg.Server.DevMode = true
			}

			log := opts.log
			log.Info("configuration loaded",
				zap.String("path", opts.info.Path),
				zap.Bool("found", opts.info.Found),
				zap.Int("port", cfg.Server.Port),
			)

			srv, err := server.NewServer(cfg, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := srv.Close(); err != nil {
					log.Warn("failed to close server", zap.Error(err))
				}
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
			if open && !cfg.Server.DevMode {
				if err := util.OpenBrowser(url); err != nil {
					log.Warn("failed to open browser", zap.String("url", url), zap.Error(err))
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dashboard: %s (Ctrl+C to stop)\n", url)

			return srv.Run(ctx, fmt.Sprintf(":%d", cfg.Server.Port))
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	cmd.Flags().BoolVar(&devMode, "dev", false, "开发模式")
	cmd.Flags().BoolVar(&open, "open", false, "启动后打开浏览器")
	return cmd
}
