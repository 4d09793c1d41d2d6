package chatcmder

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"recipe-wizard/internal/domain"
	"recipe-wizard/internal/integrations/providers"
	"recipe-wizard/internal/usecase"
)

const chatLongDesc string = `Start an interactive recipe chat in the terminal.

Each message is answered with a recipe rendered as markdown. When an
image model is selected the image URL is shown above the recipe.

Commands:
  /clear   start a new conversation
  /quit    exit

Examples:
  recipe-wizard chat --model gpt-4o-mini --api-key sk-...
  recipe-wizard chat --model gemini-1.5-pro --api-key ... --image-model dall-e-3 --image-api-key sk-...`

const chatShortDesc string = "Chat with the recipe assistant"

const (
	clearCommand = "/clear"
	quitCommand  = "/quit"
)

type chatter interface {
	Chat(ctx context.Context, in usecase.ChatInput) (usecase.ChatOutput, error)
}

type chatCommander struct {
	model       string
	apiKey      string
	imageModel  string
	imageAPIKey string
	timeout     time.Duration

	render func(string) (string, error)
}

func NewChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := usecase.NewChatService(providers.New(cmder.timeout), nil, nil, usecase.Config{})
			if err != nil {
				return fmt.Errorf("could not create chat service: %w", err)
			}
			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(80),
			)
			if err != nil {
				return fmt.Errorf("could not create markdown renderer: %w", err)
			}
			cmder.render = renderer.Render
			return cmder.run(cmd.Context(), svc, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&cmder.model, "model", "m", "gpt-4o-mini", "Chat model (gpt-* or gemini-*)")
	cmd.Flags().StringVar(&cmder.apiKey, "api-key", "", "API key for the chat model")
	cmd.Flags().StringVar(&cmder.imageModel, "image-model", usecase.NoImageModel, "Image model (dall-e-*), or \"No Image\"")
	cmd.Flags().StringVar(&cmder.imageAPIKey, "image-api-key", "", "API key for the image model")
	cmd.Flags().DurationVar(&cmder.timeout, "timeout", 60*time.Second, "Per-request provider timeout")

	return cmd
}

func (c *chatCommander) run(ctx context.Context, svc chatter, in io.Reader, out io.Writer) error {
	history := usecase.Reset().History
	scanner := bufio.NewScanner(in)

	fmt.Fprintf(out, "Recipe wizard (%s). Type %s to start over, %s to exit.\n", c.model, clearCommand, quitCommand)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case quitCommand:
			return nil
		case clearCommand:
			history = usecase.Reset().History
			fmt.Fprintln(out, "Conversation cleared.")
			continue
		}

		result, err := svc.Chat(ctx, usecase.ChatInput{
			Message:     line,
			History:     history,
			ChatModel:   c.model,
			ChatAPIKey:  c.apiKey,
			ImageModel:  c.imageModel,
			ImageAPIKey: c.imageAPIKey,
		})
		if err != nil {
			slog.ErrorContext(ctx, "chat turn failed", "err", err)
			fmt.Fprintln(out, describeError(err))
			continue
		}

		history = append(history,
			domain.ChatMessage{Role: domain.RoleUser, Content: line},
			domain.ChatMessage{Role: domain.RoleAssistant, Content: result.Message},
		)

		if result.ImageDegraded {
			fmt.Fprintln(out, "(image unavailable)")
		}
		fmt.Fprint(out, c.renderMarkdown(result.Message))
	}
}

func (c *chatCommander) renderMarkdown(md string) string {
	if c.render == nil {
		return md + "\n"
	}
	rendered, err := c.render(md)
	if err != nil {
		return md + "\n"
	}
	return rendered
}

func describeError(err error) string {
	var ucErr *usecase.Error
	if !errors.As(err, &ucErr) {
		return "Error: something went wrong."
	}
	switch ucErr.Code {
	case usecase.ErrorUnsupportedModel, usecase.ErrorInvalidInput:
		return "Error: " + ucErr.Error()
	case usecase.ErrorRateLimited:
		return "Error: the model provider is rate limiting requests, try again shortly."
	case usecase.ErrorMalformedRecipe:
		return "Error: the model did not return a usable recipe, try rephrasing."
	default:
		return "Error: the model provider request failed."
	}
}
