package notifier

import (
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TelegramNotifier delivers chat notifications to workers who have a
// linked chat. Delivery is best-effort; a worker with no linked chat is
// simply skipped.
type TelegramNotifier struct {
	bot     *gotgbot.Bot
	printer *message.Printer
}

func New(token string) (*TelegramNotifier, error) {
	bot, err := gotgbot.NewBot(token, nil)
	if err != nil {
		return nil, err
	}

	return &TelegramNotifier{
		bot:     bot,
		printer: message.NewPrinter(language.English),
	}, nil
}

func (n *TelegramNotifier) Send(chatID int64, text string) error {
	_, err := n.bot.SendMessage(chatID, text, &gotgbot.SendMessageOpts{
		LinkPreviewOptions: &gotgbot.LinkPreviewOptions{
			IsDisabled: true,
		},
	})
	return err
}

// FormatAmount renders a TON amount with locale-aware grouping, e.g.
// "1,234.50 TON".
func (n *TelegramNotifier) FormatAmount(amount decimal.Decimal) string {
	value, _ := amount.Float64()
	return n.printer.Sprintf("%.2f TON", value)
}
