package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cbodonnell/chatsnake/pkg/api"
	"github.com/cbodonnell/chatsnake/pkg/controller"
	"github.com/cbodonnell/chatsnake/pkg/game"
	"github.com/cbodonnell/chatsnake/pkg/game/constants"
	"github.com/cbodonnell/chatsnake/pkg/log"
	"github.com/cbodonnell/chatsnake/pkg/queue"
	"github.com/cbodonnell/chatsnake/pkg/render"
	"github.com/cbodonnell/chatsnake/pkg/session"
	"github.com/cbodonnell/chatsnake/pkg/transport"
	"github.com/cbodonnell/chatsnake/pkg/transport/discord"
	"github.com/cbodonnell/chatsnake/pkg/transport/hub"
	"github.com/cbodonnell/chatsnake/pkg/version"
	"github.com/cbodonnell/chatsnake/pkg/workers"
	"golang.org/x/exp/rand"
)

func main() {
	transportName := flag.String("transport", "hub", "Chat transport (discord|hub)")
	apiPort := flag.Int("api-port", 8080, "API port to listen on, the hub is served at /ws")
	logLevel := flag.String("log-level", "info", "Log level")
	width := flag.Int("width", constants.DefaultBoardWidth, "Default board width")
	height := flag.Int("height", constants.DefaultBoardHeight, "Default board height")
	maxCells := flag.Int("max-cells", constants.DefaultMaxCells, fmt.Sprintf("Maximum number of board cells, at most %d, 0 for the maximum", constants.HardMaxCells))
	bounds := flag.String("bounds", "wrap", "Edge behavior (wrap|reject)")
	tolerateReactionErrors := flag.Bool("tolerate-reaction-errors", false, "Keep a new game when its controls could not be attached")
	queueSize := flag.Int("queue-size", queue.DefaultQueueBufferSize, "Maximum number of pending chat events")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	policy, err := game.ParseBoundsPolicy(*bounds)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse bounds policy: %v", err))
	}
	if *maxCells > constants.HardMaxCells {
		panic(fmt.Sprintf("-max-cells %d exceeds the limit of %d", *maxCells, constants.HardMaxCells))
	}
	if _, err := game.NewBoard(*width, *height, *maxCells); err != nil {
		panic(fmt.Sprintf("Invalid default board: %v", err))
	}

	log.Info("Starting server version %s", version.Get())
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	eventQueue := queue.NewInMemoryQueue(*queueSize)

	var chat transport.Transport
	var hubHandler http.Handler
	switch *transportName {
	case "discord":
		token := os.Getenv("SNAKE_DISCORD_TOKEN")
		if token == "" {
			panic("SNAKE_DISCORD_TOKEN environment variable must be set")
		}
		discordTransport, err := discord.NewTransport(discord.NewTransportOptions{
			Token:      token,
			EventQueue: eventQueue,
		})
		if err != nil {
			panic(fmt.Sprintf("Failed to create discord transport: %v", err))
		}
		if err := discordTransport.Open(); err != nil {
			panic(fmt.Sprintf("Failed to connect to discord: %v", err))
		}
		defer discordTransport.Close()
		chat = discordTransport
	case "hub":
		chatHub := hub.NewHub(hub.NewHubOptions{
			EventQueue: eventQueue,
		})
		chat = chatHub
		hubHandler = chatHub
	default:
		panic(fmt.Sprintf("Unknown transport: %s", *transportName))
	}
	log.Info("Using %s transport as %s", *transportName, chat.SelfID())

	store := session.NewInMemoryStore()
	renderer := render.NewRenderer(render.NewRendererOptions{})

	ctrl := controller.NewController(controller.NewControllerOptions{
		Transport:              chat,
		Store:                  store,
		Renderer:               renderer,
		DefaultWidth:           *width,
		DefaultHeight:          *height,
		MaxCells:               *maxCells,
		Policy:                 policy,
		TolerateReactionErrors: *tolerateReactionErrors,
		RandFactory: func() *rand.Rand {
			return rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
		},
	})

	apiServer := api.NewAPIServer(api.NewAPIServerOptions{
		Port:     *apiPort,
		Store:    store,
		Renderer: renderer,
		Hub:      hubHandler,
	})
	go apiServer.Start()

	chatEventWorker := workers.NewChatEventWorker(workers.NewChatEventWorkerOptions{
		EventQueue: eventQueue,
		Consumer:   ctrl,
	})
	go chatEventWorker.Start(ctx)

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := apiServer.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop API server: %v", err)
	}
}
