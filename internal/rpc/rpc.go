package rpc

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

type AccountInfo struct {
	Value *AccountInfoValue `json:"value"`
}

type AccountInfoValue struct {
	Data       []string `json:"data"`
	Owner      string   `json:"owner"`
	Lamports   uint64   `json:"lamports"`
	Executable bool     `json:"executable"`
}

type BlockhashResult struct {
	Value BlockhashValue `json:"value"`
}

type BlockhashValue struct {
	Blockhash string `json:"blockhash"`
}

type RequestBody struct {
	Jsonrpc string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type ResponseBody struct {
	Jsonrpc string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Client is a minimal Solana JSON-RPC client covering the few calls the
// tracker needs. It satisfies market.AccountSource.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{},
	}
}

func (c *Client) CallRPC(ctx context.Context, method string, params interface{}) (*ResponseBody, error) {
	requestBody := RequestBody{
		Jsonrpc: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	}

	reqBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var reader io.ReadCloser
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		reader, err = gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer reader.Close()
	default:
		reader = resp.Body
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	var responseBody ResponseBody
	if err := json.Unmarshal(body, &responseBody); err != nil {
		return nil, err
	}

	if responseBody.Error != nil {
		return nil, errors.New(responseBody.Error.Message)
	}

	return &responseBody, nil
}

func (c *Client) GetAccountInfo(ctx context.Context, publicKey solana.PublicKey, dataSlice *rpc.DataSlice) (*AccountInfo, error) {
	params := map[string]interface{}{
		"encoding":   "base64",
		"commitment": "confirmed",
	}

	if dataSlice != nil {
		params["dataSlice"] = map[string]interface{}{
			"offset": dataSlice.Offset,
			"length": dataSlice.Length,
		}
	}

	reqParams := []interface{}{
		publicKey,
		params,
	}

	response, err := c.CallRPC(ctx, "getAccountInfo", reqParams)
	if err != nil {
		return nil, err
	}

	var accountInfo AccountInfo
	if err := json.Unmarshal(response.Result, &accountInfo); err != nil {
		return nil, err
	}

	return &accountInfo, nil
}

// FetchAccountBytes returns the full raw data of one account. A missing
// account is an error here, never an empty buffer.
func (c *Client) FetchAccountBytes(ctx context.Context, account solana.PublicKey) ([]byte, error) {
	info, err := c.GetAccountInfo(ctx, account, nil)
	if err != nil {
		return nil, err
	}

	if info.Value == nil {
		return nil, fmt.Errorf("account %s not found", account)
	}

	if len(info.Value.Data) == 0 {
		return nil, fmt.Errorf("account %s returned no data", account)
	}

	return base64.StdEncoding.DecodeString(info.Value.Data[0])
}

func (c *Client) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	params := []interface{}{
		map[string]interface{}{
			"commitment": "confirmed",
		},
	}

	response, err := c.CallRPC(ctx, "getLatestBlockhash", params)
	if err != nil {
		return solana.Hash{}, err
	}

	var result BlockhashResult
	if err := json.Unmarshal(response.Result, &result); err != nil {
		return solana.Hash{}, err
	}

	hash, err := solana.HashFromBase58(result.Value.Blockhash)
	if err != nil {
		return solana.Hash{}, err
	}

	return hash, nil
}
