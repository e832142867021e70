package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"

	"github.com/mizuiro-dev/orderagent/dialogue"
	"github.com/mizuiro-dev/orderagent/extract"
	"github.com/mizuiro-dev/orderagent/schema"
	"github.com/mizuiro-dev/orderagent/session"
)

func main() {
	conf := flag.String("config", "config.json", "path to config file")
	flag.Parse()
	config, err := loadConfig(*conf)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := startApp(context.Background(), config); err != nil {
		log.Fatalf("start app: %v", err)
	}
}

func startApp(ctx context.Context, config *Config) error {
	slog.SetLogLoggerLevel(slog.LevelInfo)

	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  config.APIKey,
		Model:   config.Model,
		BaseURL: config.BaseURL,
	})
	if err != nil {
		return err
	}
	parser, err := extract.NewParser(extract.NewEinoChatClient(cm))
	if err != nil {
		return err
	}
	flow := dialogue.NewFlow(parser)
	store := session.NewMemoryStore()
	ctx = session.WithSessionID(ctx, session.NewSessionID())

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("注文アシスタントです。ご注文の内容を教えてください（例：ABC商事にウィジェットを3個、カード払いで）：")
	for {
		fmt.Print("ユーザー: ")
		input, rErr := reader.ReadString('\n')
		if rErr != nil {
			fmt.Println("入力が終了しました。")
			return nil
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		state, rErr := store.Read(ctx)
		if rErr != nil {
			return rErr
		}
		turn, tErr := runTurn(ctx, flow, state, input)
		if tErr != nil {
			fmt.Printf("すみません、依頼を解釈できませんでした。もう一度お願いします。（%v）\n", tErr)
			continue
		}

		if turn.Status == dialogue.TurnDone {
			printOrder(turn.Order)
			if rErr := store.Remove(ctx); rErr != nil {
				return rErr
			}
			fmt.Println("新しいご注文があればどうぞ。")
			continue
		}

		if wErr := store.Write(ctx, &session.State{
			Draft:    turn.Draft,
			Field:    turn.Field,
			Question: turn.Question,
		}); wErr != nil {
			return wErr
		}
		fmt.Printf("\nアシスタント: %s\n======\n", turn.Question)
	}
}

// runTurn answers the pending question when one exists, otherwise treats
// the input as a (re)statement of the whole request.
func runTurn(ctx context.Context, flow *dialogue.Flow, state *session.State, input string) (*dialogue.Turn, error) {
	if state.Field != "" {
		return flow.Reply(ctx, state.Draft, state.Field, input)
	}
	return flow.Start(ctx, input)
}

func printOrder(order *schema.Order) {
	fmt.Println("\n注文が確定しました。")
	fmt.Printf("発行日: %s / 通貨: %s / 支払方法: %s\n", order.IssueDate, order.Currency, order.PaymentMethod)
	fmt.Printf("売り手: %s / 買い手: %s\n", order.Seller.Name, order.Buyer.Name)
	for _, it := range order.Items {
		fmt.Printf("  %s x%d @%s (%s)\n", it.Name, it.Qty, it.UnitPrice.StringFixed(2), it.SKU)
	}
	fmt.Printf("小計: %s / 税額: %s / 合計: %s\n",
		order.ItemsTotal().StringFixed(2),
		order.TaxAmount().StringFixed(2),
		order.GrandTotal().StringFixed(2))
}
