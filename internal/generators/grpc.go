package generators

import (
	"context"
	"crypto/x509"
	"encoding/json"
	"errors"
	"io"
	"log"
	"time"

	pb "github.com/iqbalbaharum/solana-protos/pb"
	"github.com/mr-tron/base58"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/metadata"
)

var kacp = keepalive.ClientParameters{
	Time:                10 * time.Minute,
	Timeout:             20 * time.Second,
	PermitWithoutStream: true,
}

// AccountUpdate is one geyser account notification, reduced to the fields
// the relay needs. Data is the raw account buffer, padding included.
type AccountUpdate struct {
	Source       string `json:"source"`
	Pubkey       string `json:"pubkey"`
	Owner        string `json:"owner"`
	Data         []byte `json:"data"`
	Slot         uint64 `json:"slot"`
	WriteVersion uint64 `json:"writeVersion"`
	IsStartup    bool   `json:"isStartup"`
}

type GrpcClient struct {
	conn   *grpc.ClientConn
	client pb.GeyserClient
}

func GrpcConnect(address string, plaintext bool) (*GrpcClient, error) {
	var opts []grpc.DialOption
	if plaintext {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	} else {
		pool, _ := x509.SystemCertPool()
		creds := credentials.NewClientTLSFromCert(pool, "")
		opts = append(opts, grpc.WithTransportCredentials(creds))
	}

	opts = append(opts, grpc.WithKeepaliveParams(kacp))
	opts = append(opts, grpc.WithInitialWindowSize(100<<20))
	opts = append(opts, grpc.WithInitialConnWindowSize(100<<20))
	opts = append(opts, grpc.WithDefaultCallOptions(grpc.MaxCallRecvMsgSize(1<<30)))

	log.Println("Starting grpc client, connecting to", address)
	conn, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, err
	}

	client := pb.NewGeyserClient(conn)
	return &GrpcClient{conn, client}, nil
}

func (g *GrpcClient) CloseConnection() error {
	if g.conn != nil {
		return g.conn.Close()
	}
	return nil
}

// GrpcSubscribeAccounts streams account updates for the given addresses
// and/or owning programs into updateChannel. It blocks until the stream
// breaks or ctx is cancelled; the channel is shared across sources and is
// never closed here.
func (g *GrpcClient) GrpcSubscribeAccounts(ctx context.Context, sourceName string, grpcToken string, accounts []string, owners []string, updateChannel chan<- AccountUpdate) error {
	if g.client == nil {
		return errors.New("GRPC not connected")
	}

	subscription := pb.SubscribeRequest{
		Slots:        make(map[string]*pb.SubscribeRequestFilterSlots),
		Blocks:       make(map[string]*pb.SubscribeRequestFilterBlocks),
		BlocksMeta:   make(map[string]*pb.SubscribeRequestFilterBlocksMeta),
		Accounts:     make(map[string]*pb.SubscribeRequestFilterAccounts),
		Transactions: make(map[string]*pb.SubscribeRequestFilterTransactions),
		Entry:        make(map[string]*pb.SubscribeRequestFilterEntry),
		Commitment:   pb.CommitmentLevel_PROCESSED.Enum(),
	}

	subscription.Accounts["tracker"] = &pb.SubscribeRequestFilterAccounts{
		Account: accounts,
		Owner:   owners,
	}

	subscriptionJson, err := json.Marshal(&subscription)
	if err != nil {
		log.Printf("Failed to marshal subscription request: %v", err)
		return err
	}
	log.Printf("Subscription request: %s", string(subscriptionJson))

	if grpcToken != "" {
		md := metadata.New(map[string]string{"x-token": grpcToken})
		ctx = metadata.NewOutgoingContext(ctx, md)
	}

	stream, err := g.client.Subscribe(ctx,
		grpc.MaxCallRecvMsgSize(100<<20),
	)
	if err != nil {
		return err
	}

	if err := stream.Send(&subscription); err != nil {
		return err
	}

	for {
		resp, err := stream.Recv()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			log.Printf("Error occurred in receiving update: %v", err)
			return err
		}

		acct := resp.GetAccount()
		if acct == nil || acct.Account == nil {
			continue
		}

		updateChannel <- AccountUpdate{
			Source:       sourceName,
			Pubkey:       base58.Encode(acct.Account.Pubkey),
			Owner:        base58.Encode(acct.Account.Owner),
			Data:         acct.Account.Data,
			Slot:         acct.Slot,
			WriteVersion: acct.Account.WriteVersion,
			IsStartup:    acct.IsStartup,
		}
	}
}
