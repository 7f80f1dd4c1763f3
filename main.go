package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/go-chi/chi/v5"
	"github.com/iqbalbaharum/serum-event-tracker/internal/adapter"
	"github.com/iqbalbaharum/serum-event-tracker/internal/config"
	"github.com/iqbalbaharum/serum-event-tracker/internal/generators"
	"github.com/iqbalbaharum/serum-event-tracker/internal/handler"
	relay "github.com/iqbalbaharum/serum-event-tracker/internal/library"
	"github.com/iqbalbaharum/serum-event-tracker/internal/rpc"
	"github.com/iqbalbaharum/serum-event-tracker/internal/storage"
)

type Server struct {
	Router *chi.Mux
}

func CreateServer(hub *generators.Hub, client *rpc.Client) *Server {
	server := &Server{
		Router: handler.CreateRoutes(hub, client),
	}

	return server
}

const (
	PORT = 5000
)

var (
	grpcs         []*generators.GrpcClient
	listeners     sync.WaitGroup
	workers       sync.WaitGroup
	updateChannel chan generators.AccountUpdate
)

func main() {
	numCPU := runtime.NumCPU() * 2
	maxProcs := runtime.GOMAXPROCS(0)
	log.Printf("Number of logical CPUs available: %d", numCPU)
	log.Printf("Number of CPUs being used: %d", maxProcs)

	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := config.InitEnv()
	if err != nil {
		log.Print(err)
		return
	}

	err = adapter.InitRedisClients(config.RedisAddr, config.RedisPassword)
	if err != nil {
		log.Fatalf("Failed to initialize Redis clients: %v", err)
	}

	err = adapter.InitMySQLClient(config.MySqlDsn)
	if err != nil {
		log.Fatalf("Failed to initialize SQL client: %v", err)
	}

	mySqlClient, err := adapter.GetMySQLClient()
	if err != nil {
		log.Fatalf("Failed to get SQL client: %v", err)
	}

	storage.Init(mySqlClient)

	log.Print("Initialized ENVIRONMENT successfully")

	eventsRedis, err := adapter.GetRedisClient(adapter.DbEvents)
	if err != nil {
		log.Fatalf("Failed to get initialize redis instance: %v", err)
	}

	rpcClient := rpc.NewClient(config.RpcHttpUrl)
	hub := generators.NewHub()
	publisher := storage.NewEventPublisher(eventsRedis)

	relay.Init(rpcClient, config.ProgramID, hub, publisher)
	relay.RestoreTracked()

	entries, err := config.LoadMarketsFile(config.MarketsFile)
	if err != nil {
		log.Print(err)
	}
	relay.LoadConfiguredMarkets(ctx, entries)

	client, err := generators.GrpcConnect(config.GRPC1.Addr, config.GRPC1.InsecureConnection)

	if err != nil {
		log.Fatalf("Error in GRPC connection: %s ", err)
	}

	client2, err := generators.GrpcConnect(config.GRPC2.Addr, config.GRPC2.InsecureConnection)

	if err != nil {
		log.Fatalf("Error in GRPC connection: %s ", err)
	}

	grpcs = append(grpcs, client, client2)

	updateChannel = make(chan generators.AccountUpdate)

	var processed sync.Map

	// Create a worker pool. Updates are deduped across the two geyser
	// feeds by pubkey and write version.
	for i := 0; i < numCPU; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			for update := range updateChannel {
				key := fmt.Sprintf("%s:%d", update.Pubkey, update.WriteVersion)
				if _, exists := processed.Load(key); !exists {
					processed.Store(key, true)
					relay.ProcessAccountUpdate(update)

					time.AfterFunc(1*time.Minute, func() {
						processed.Delete(key)
					})
				}
			}
		}()
	}

	listenFor(ctx, grpcs[0], "triton", config.GRPC1.Token, updateChannel)
	listenFor(ctx, grpcs[1], "solana-tracker", config.GRPC2.Token, updateChannel)

	server := CreateServer(hub, rpcClient)
	port := fmt.Sprintf(":%d", PORT)

	srv := &http.Server{
		Addr:    port,
		Handler: server.Router,
	}

	go func() {
		log.Printf("server running on port%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Print("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}

	// Listeners stop sending once the context is cancelled, so the channel
	// can only be closed after they are all gone.
	listeners.Wait()
	close(updateChannel)
	workers.Wait()

	for i := 0; i < len(grpcs); i++ {
		if err := grpcs[i].CloseConnection(); err != nil {
			log.Printf("Error closing gRPC connection: %v", err)
		}
	}
}

// Listening geyser for account updates owned by the DEX program. The
// subscription is retried until the context ends.
func listenFor(ctx context.Context, client *generators.GrpcClient, name string, token string, updateChannel chan generators.AccountUpdate) {
	listeners.Add(1)
	go func() {
		defer listeners.Done()
		for {
			err := client.GrpcSubscribeAccounts(
				ctx,
				name,
				token,
				nil,
				[]string{config.ProgramID.String()},
				updateChannel)
			if err != nil {
				log.Printf("%s | subscription error: %v", name, err)
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
		}
	}()
}
