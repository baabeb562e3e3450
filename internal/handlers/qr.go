package handlers

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/fisk/followup/internal/services"
)

// QR writes a PNG QR code that opens a WhatsApp chat with the contact.
func (a *App) QR(args []string) error {
	var (
		id    uint
		phone string
		out   string
		size  int
	)
	fs := a.flags("qr")
	fs.UintVar(&id, "id", 0, "contact id")
	fs.StringVar(&phone, "phone", "", "phone number, instead of --id")
	fs.StringVar(&out, "out", "", "destination .png file")
	fs.IntVar(&size, "size", services.DefaultQRSize, "edge length in pixels")
	if err := parse(fs, args, 0); err != nil {
		return err
	}
	if out == "" || (id == 0) == (phone == "") {
		return fmt.Errorf("%w: qr needs --out and exactly one of --id or --phone", ErrUsage)
	}
	if id != 0 {
		c, err := a.Contacts.Get(id)
		if err != nil {
			return err
		}
		phone = c.Phone
	}

	png, err := services.ContactQR(phone, size)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, png, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	url, _ := services.WhatsAppURL(phone)
	a.Log.Info("qr written", zap.String("path", out), zap.Uint("id", id))
	a.ok("qr")
	a.println(url)
	return nil
}
