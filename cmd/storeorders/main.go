package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tapppp/storeorders/config"
	"github.com/tapppp/storeorders/internal/api"
	"github.com/tapppp/storeorders/internal/listener"
	"github.com/tapppp/storeorders/internal/models"
	"github.com/tapppp/storeorders/internal/notify"
	"github.com/tapppp/storeorders/internal/poller"
	"github.com/tapppp/storeorders/internal/reconcile"
	"github.com/tapppp/storeorders/internal/service"
	"github.com/tapppp/storeorders/internal/session"
)

// newLogger creates logger with log level
func newLogger(level string) (*zap.Logger, error) {
	loggerLvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	loggerCfg := zap.NewProductionConfig()
	loggerCfg.Level = loggerLvl

	return loggerCfg.Build()
}

// stdinConfirmer asks for confirmation on the terminal
type stdinConfirmer struct {
	in *bufio.Reader
}

func (c *stdinConfirmer) Confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func main() {
	// create new config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// initialize logger
	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := api.NewClient(cfg.API.BaseURL)
	store := session.NewStore(cfg.Session.File)
	authService := service.NewAuthService(client, store, logger)

	sess, err := authService.Session()
	if err != nil {
		email := os.Getenv("STOREORDERS_EMAIL")
		password := os.Getenv("STOREORDERS_PASSWORD")
		if email == "" || password == "" {
			logger.Fatal("no stored session, set STOREORDERS_EMAIL and STOREORDERS_PASSWORD to log in")
		}
		sess, err = authService.Login(ctx, email, password)
		if err != nil {
			logger.Fatal("login", zap.Error(err))
		}
	}

	stdin := bufio.NewReader(os.Stdin)
	notifier := notify.NewLogNotifier(logger)
	orders := service.NewOrderService(client, sess, notifier, &stdinConfirmer{in: stdin}, logger)

	snapshots := poller.New(
		orders.Fetch,
		func(snap reconcile.Snapshot) {
			orders.Apply(snap)
			for id := range snap.NewIDs {
				logger.Info("new order", zap.String("id", id))
			}
		},
		cfg.Poll.Interval,
		logger,
	)
	snapshots.Start(ctx)
	defer snapshots.Stop()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	events := listener.New(rdb, notifier, snapshots.Refresh, logger)
	if err := events.Connect(ctx, sess.StoreID); err != nil {
		// polling alone still keeps the list fresh
		logger.Warn("push channel unavailable, relying on polling", zap.Error(err))
	} else {
		defer events.Close()
	}

	fmt.Printf("Connected to %s. Commands: list [all|approved|decline], approve <id>, decline <id>, delete <id>, logout, quit\n", sess.StoreName)

	go func() {
		<-ctx.Done()
		os.Stdin.Close()
	}()

	for {
		fmt.Print("> ")
		line, err := stdin.ReadString('\n')
		if err != nil {
			return
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "list":
			label := service.FilterAllOrders
			if len(fields) > 1 {
				switch fields[1] {
				case "approved":
					label = service.FilterApproved
				case "decline":
					label = service.FilterDecline
				}
			}
			for _, o := range orders.Filter(label) {
				fmt.Printf("#%s  %-20s %-10s %-16s %8.2f  %s\n",
					o.ID, o.CustomerName, models.DisplayStatus(o.Status), o.PaymentMethod, o.Total, o.PlacedAtText)
			}
		case "approve":
			if len(fields) > 1 {
				if err := orders.Approve(ctx, fields[1]); err != nil {
					fmt.Println("error:", err)
				}
			}
		case "decline":
			if len(fields) > 1 {
				if err := orders.Decline(ctx, fields[1]); err != nil {
					fmt.Println("error:", err)
				}
			}
		case "delete":
			if len(fields) > 1 {
				if err := orders.Delete(ctx, fields[1]); err != nil {
					fmt.Println("error:", err)
				}
			}
		case "logout":
			if err := authService.Logout(); err != nil {
				fmt.Println("error:", err)
			}
			return
		case "quit", "exit":
			return
		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}
