package extract

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	einoschema "github.com/cloudwego/eino/schema"
)

// ChatClient is the LLM collaborator contract the extractor depends on:
// one system+user exchange in, raw text out. Implementations own their own
// timeouts and transport concerns; the extractor performs no retry beyond
// the single fallback reattempt documented on Parser.
type ChatClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// EinoChatClient adapts an eino chat model to ChatClient.
type EinoChatClient struct {
	chatModel model.BaseChatModel
}

func NewEinoChatClient(chatModel model.BaseChatModel) *EinoChatClient {
	return &EinoChatClient{chatModel: chatModel}
}

func (c *EinoChatClient) Complete(ctx context.Context, system, user string) (string, error) {
	response, err := c.chatModel.Generate(ctx, []*einoschema.Message{
		einoschema.SystemMessage(system),
		einoschema.UserMessage(user),
	})
	if err != nil {
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	return response.Content, nil
}
