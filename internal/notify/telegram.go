package notify

import (
	"fmt"
	"log"

	"github.com/kangmariz/barangay-complaint-corner/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier forwards status events to a Telegram chat where the
// barangay staff hang out. Strictly one-way: the bot never reads updates.
type TelegramNotifier struct {
	BotAPI *tgbotapi.BotAPI
	ChatID int64
}

// NewTelegramNotifier authorizes the bot and returns a notifier targeting
// the given chat.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("✅ Authorized on account %s", bot.Self.UserName)

	return &TelegramNotifier{BotAPI: bot, ChatID: chatID}, nil
}

// HandleStatusEvent is the observer hook registered on the lifecycle
// service. Delivery failures are logged and dropped; a flaky Telegram API
// must not fail the status update that triggered it.
func (n *TelegramNotifier) HandleStatusEvent(ev models.StatusEvent) {
	text := fmt.Sprintf("Complaint #%d is now %s", ev.ID, ev.NewStatus)
	msg := tgbotapi.NewMessage(n.ChatID, text)
	if _, err := n.BotAPI.Send(msg); err != nil {
		log.Printf("ERROR: Failed to send Telegram notification for complaint %d: %v", ev.ID, err)
	}
}
