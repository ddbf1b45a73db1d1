package services

import (
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramService pushes booking events to hosts who linked a chat.
// A nil service is a no-op, so the integration can be left unconfigured.
type TelegramService struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramService(botToken string) (*TelegramService, error) {
	if botToken == "" {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	log.Printf("[tg] authorized as @%s", bot.Self.UserName)
	return &TelegramService{bot: bot}, nil
}

func (t *TelegramService) SendMessage(chatID int64, text string) error {
	if t == nil || t.bot == nil || chatID == 0 {
		log.Printf("[tg][skip] bot or chatID empty (chatID=%d)", chatID)
		return nil
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("[tg][send][err] chatID=%d: %v", chatID, err)
		return err
	}
	return nil
}

func (t *TelegramService) NotifyHostBooking(chatID int64, spotLabel string, start, end time.Time, totalCost float64, pendingApproval bool) error {
	verb := "booked"
	if pendingApproval {
		verb = "requested"
	}
	text := fmt.Sprintf(
		"🚗 Your spot <b>%s</b> was %s\n%s - %s\nTotal: ₹%.2f",
		spotLabel, verb,
		start.Format("02 Jan 15:04"), end.Format("02 Jan 15:04"),
		totalCost,
	)
	return t.SendMessage(chatID, text)
}
