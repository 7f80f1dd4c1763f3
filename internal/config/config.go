package config

import (
	"log"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
)

var (
	SERUM_DEX_V3 = solana.MustPublicKeyFromBase58("9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin")
	OPENBOOK_ID  = solana.MustPublicKeyFromBase58("srmqPvymJeFKQ4zGQed1GFppgkRHL9kaELCbyksJtPX")
)

type GrpcConfig struct {
	Addr               string
	Token              string
	InsecureConnection bool
}

var (
	ProgramID     solana.PublicKey
	GRPC1         GrpcConfig
	GRPC2         GrpcConfig
	RedisAddr     string
	RedisPassword string
	RpcHttpUrl    string
	MySqlDsn      string
	MySqlDbName   string
	MarketsFile   string
)

func InitEnv() error {
	if err := godotenv.Load(); err != nil {
		log.Print("No .env file found, using process environment")
	}

	ProgramID = OPENBOOK_ID
	if raw := os.Getenv("SERUM_PROGRAM_ID"); raw != "" {
		id, err := solana.PublicKeyFromBase58(raw)
		if err != nil {
			return err
		}
		ProgramID = id
	}

	GRPC1 = GrpcConfig{
		Addr:               os.Getenv("GRPC_ENDPOINT"),
		Token:              os.Getenv("GRPC_TOKEN"),
		InsecureConnection: os.Getenv("GRPC_INSECURE") == "true",
	}
	GRPC2 = GrpcConfig{
		Addr:               os.Getenv("GRPC2_ENDPOINT"),
		Token:              os.Getenv("GRPC2_TOKEN"),
		InsecureConnection: os.Getenv("GRPC2_INSECURE") == "true",
	}

	RedisAddr = os.Getenv("REDIS_ADDR")
	RedisPassword = os.Getenv("REDIS_PASSWORD")
	RpcHttpUrl = os.Getenv("RPC_HTTP_URL")
	MySqlDsn = os.Getenv("MYSQL_DSN")
	MySqlDbName = os.Getenv("MYSQL_DB_NAME")
	if MySqlDbName == "" {
		MySqlDbName = "serum_events"
	}
	MarketsFile = os.Getenv("MARKETS_FILE")

	return nil
}
