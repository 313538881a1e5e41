package notify

import (
	"context"
	"fmt"

	"divtracker/config"
	"divtracker/pkg/logger"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

// TelegramNotifier delivers alert notifications to a single configured chat,
// rate limited so alert bursts never trip Telegram's flood control.
type TelegramNotifier struct {
	cfg     *config.TelegramConfig
	log     *logger.Logger
	bot     *telebot.Bot
	chat    *telebot.Chat
	limiter *rate.Limiter
}

func NewTelegramNotifier(cfg *config.TelegramConfig, log *logger.Logger, bot *telebot.Bot) *TelegramNotifier {
	return &TelegramNotifier{
		cfg:     cfg,
		log:     log,
		bot:     bot,
		chat:    &telebot.Chat{ID: cfg.ChatID},
		limiter: rate.NewLimiter(rate.Limit(cfg.MaxRequestPerSecond), cfg.MaxRequestPerSecond),
	}
}

func (t *TelegramNotifier) Notify(ctx context.Context, title, body string) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}

	msg := fmt.Sprintf("*%s*\n%s", telegramEscape(title), telegramEscape(body))
	if _, err := t.bot.Send(t.chat, msg, telebot.ModeMarkdownV2); err != nil {
		t.log.ErrorContext(ctx, "Failed to send telegram notification", logger.ErrorField(err))
		return err
	}
	return nil
}

var markdownV2Specials = []rune{'_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!'}

func telegramEscape(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		for _, sp := range markdownV2Specials {
			if r == sp {
				out = append(out, '\\')
				break
			}
		}
		out = append(out, r)
	}
	return string(out)
}
