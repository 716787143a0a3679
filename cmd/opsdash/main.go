package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"opsdash/internal/config"
	"opsdash/internal/logger"
)

// cliOptions 全局参数与运行期依赖
type cliOptions struct {
	configPath string
	logLevel   string

	cfg  *config.AppConfig
	info config.LoadConfigInfo
	log  *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "opsdash",
		Short:         "Operations report dashboard",
		Long:          "Analyzes End Of Shift reports and summarizes procurement extracts, as a web dashboard or from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "配置文件路径 (默认为可执行文件同目录下的 config.toml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "日志级别 debug/info/warn/error (覆盖配置文件)")

	root.AddCommand(
		newServeCmd(opts),
		newShiftCmd(opts),
		newProcurementCmd(opts),
	)
	return root
}

// init 加载配置并初始化日志
func (o *cliOptions) init() error {
	cfg, info, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return err
	}

	o.cfg, o.info, o.log = cfg, info, log
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
