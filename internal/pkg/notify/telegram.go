package notify

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Min interval between any two Telegram messages to the same chat to avoid 429 Too Many Requests (~30/min limit).
const telegramSendInterval = 2 * time.Second

// TelegramNotifier sends run summaries to a Telegram chat.
type TelegramNotifier struct {
	bot      *tgbotapi.BotAPI
	chatID   int64
	mu       sync.Mutex
	lastSend time.Time
}

// NewTelegramNotifier creates a new Telegram notifier. Returns nil when the
// bot cannot be created or reached, so callers can treat notifications as
// best-effort.
func NewTelegramNotifier(token string, chatID int64) *TelegramNotifier {
	if token == "" || chatID == 0 {
		return nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		slog.Error("Failed to create telegram bot", "error", err)
		return nil
	}

	bot.Debug = false

	// Test bot connection
	if _, err := bot.GetMe(); err != nil {
		slog.Error("Failed to get bot info", "error", err)
		return nil
	}

	slog.Info("Telegram notifier initialized", "chat_id", chatID)
	return &TelegramNotifier{bot: bot, chatID: chatID}
}

// SeasonSummary is one line of a run report.
type SeasonSummary struct {
	Season string
	Games  int
	Path   string
}

// NotifyRunSummary reports a completed scrape run.
func (n *TelegramNotifier) NotifyRunSummary(summaries []SeasonSummary, elapsed time.Duration) {
	if n == nil {
		return
	}

	var b strings.Builder
	b.WriteString("🏀 NBA dataset run finished\n")
	total := 0
	for _, s := range summaries {
		total += s.Games
		fmt.Fprintf(&b, "• %s: %d games → %s\n", s.Season, s.Games, s.Path)
	}
	fmt.Fprintf(&b, "Total: %d games in %s", total, elapsed.Round(time.Second))

	n.send(b.String())
}

// NotifyRunFailure reports a run that produced no data.
func (n *TelegramNotifier) NotifyRunFailure(err error) {
	if n == nil {
		return
	}
	n.send(fmt.Sprintf("⚠️ NBA dataset run failed: %v", err))
}

func (n *TelegramNotifier) send(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if wait := telegramSendInterval - time.Since(n.lastSend); wait > 0 {
		time.Sleep(wait)
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		slog.Error("Failed to send telegram message", "error", err)
		return
	}
	n.lastSend = time.Now()
}
