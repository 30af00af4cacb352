package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/itsakphyo/myanlang-translation-platform/internal/api"
	"github.com/itsakphyo/myanlang-translation-platform/internal/config"
	"github.com/itsakphyo/myanlang-translation-platform/internal/container"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long: `Start the MyanLang API server.
The server will listen on the configured host and port, and provide
REST API interfaces for jobs, task claiming, submission and QA review,
plus a WebSocket feed of queue events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. 加载配置
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err := api.NewLoggerFromConfig(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		// 2. 初始化容器
		ctr, err := container.NewContainer(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		defer ctr.Close()

		// 3. 启动后台组件
		go ctr.Hub().Run()
		ctr.Collector().Start()

		// 配置文件热更新: 运行中调整日志级别
		if configPath != "" {
			watcher := config.NewWatcher(cfg, configPath)
			watcher.OnChange(func(newCfg *config.Config) {
				level, err := logrus.ParseLevel(newCfg.Log.Level)
				if err != nil {
					logger.WithError(err).Warn("invalid log level in reloaded config")
					return
				}
				logger.SetLevel(level)
				api.SetLoggerLevel(level)
				logger.WithField("level", newCfg.Log.Level).Info("log level updated")
			})
			if err := watcher.Start(); err != nil {
				logger.WithError(err).Warn("config watcher not started")
			} else {
				defer watcher.Stop()
			}
		}

		// 4. 设置路由
		router := api.SetupRoutes(cfg, &api.RouterDeps{
			DB:                ctr.DB(),
			Hub:               ctr.Hub(),
			LifecycleService:  ctr.LifecycleService(),
			ReviewService:     ctr.ReviewService(),
			LedgerService:     ctr.LedgerService(),
			JobService:        ctr.JobService(),
			StatisticsService: ctr.StatisticsService(),
			LanguageRepo:      ctr.LanguageRepo(),
		})

		// 5. 启动服务器
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		srv := &http.Server{
			Addr:    addr,
			Handler: router,
		}

		go func() {
			logger.WithField("addr", addr).Info("server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.WithError(err).Fatal("failed to start server")
			}
		}()

		// 等待中断信号
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("shutting down server")

		// 优雅关闭
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.WithError(err).Fatal("server forced to shutdown")
		}

		logger.Info("server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// 服务器配置标志
	serverCmd.Flags().String("config", "", "Config file path (default: config.yaml)")
	serverCmd.Flags().String("host", "0.0.0.0", "Server host")
	serverCmd.Flags().Int("port", 8080, "Server port")
}
