package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	app "resistor-vision/internal/application"
	"resistor-vision/internal/container"
	"resistor-vision/internal/domain/entity"
	"resistor-vision/internal/messages"
)

// maxPhotoBytes предел размера скачиваемого файла
const maxPhotoBytes = 20 << 20

var errPhotoTooLarge = errors.New("photo is too large")

// Bot представляет Telegram-бота
type Bot struct {
	api         *tgbotapi.BotAPI
	users       *app.UserService
	recognition *app.RecognitionService
	tr          *messages.Translator
	logger      *zap.Logger
	client      *http.Client
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container, tr *messages.Translator, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	logger.Info("authorized", zap.String("account", api.Self.UserName))

	return &Bot{
		api:         api,
		users:       c.UserService,
		recognition: c.RecognitionService,
		tr:          tr,
		logger:      logger,
		client:      http.DefaultClient,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены контекста
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.From == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.users.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		b.logger.Error("get user", zap.Int64("user_id", msg.From.ID), zap.Error(err))
		return
	}
	if lang := b.tr.Match(msg.From.LanguageCode); lang != user.Language {
		if user, err = b.users.SetLanguage(ctx, user.ID, user.ChatID, lang); err != nil {
			b.logger.Error("set language", zap.Int64("user_id", msg.From.ID), zap.Error(err))
			return
		}
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}

	// Обработка фото, в том числе отправленного файлом
	if fileID, ok := photoFileID(msg); ok {
		b.handlePhoto(ctx, msg, user, fileID)
		return
	}

	// Текстовое сообщение (не команда)
	b.sendMessage(msg.Chat.ID, b.tr.T(user.Language, "sendPhoto", nil))
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	lang := user.Language
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		if _, err := b.users.Cancel(ctx, user.ID, chatID); err != nil {
			b.logger.Error("reset state", zap.Error(err))
		}
		b.sendMessage(chatID, b.tr.T(lang, "start", nil))

	case "help":
		b.sendMessage(chatID, b.tr.T(lang, "help", nil))

	case "check":
		if _, err := b.users.BeginCheck(ctx, user.ID, chatID); err != nil {
			b.logger.Error("begin check", zap.Error(err))
		}
		b.sendMessage(chatID, b.tr.T(lang, "awaitingPhoto", nil))

	case "mode":
		n, ok := parseMode(msg.CommandArguments())
		if !ok {
			b.sendMessage(chatID, b.tr.T(lang, "modeUsage", nil))
			return
		}
		updated, err := b.users.SetMode(ctx, user.ID, chatID, n)
		if err != nil {
			b.sendMessage(chatID, b.tr.T(lang, "modeUsage", nil))
			return
		}
		b.sendMessage(chatID, b.tr.T(lang, "modeSet", map[string]any{
			"Mode":   int(updated.Mode),
			"Colors": b.tr.ColorNames(lang, updated.Colors),
		}))

	case "calc":
		names := parseColorArgs(msg.CommandArguments())
		if len(names) == 0 {
			b.sendMessage(chatID, b.tr.T(lang, "calcUsage", nil))
			return
		}
		calc, err := b.recognition.Calculate(ctx, user.ID, chatID, names)
		if err != nil {
			b.sendMessage(chatID, b.tr.T(lang, "calcError", map[string]any{"Error": err.Error()}))
			return
		}
		b.sendMessage(chatID, calculationText(b.tr, lang, calc))

	case "colors":
		b.sendMessage(chatID, colorsText(b.tr, lang))

	case "history":
		if strings.TrimSpace(msg.CommandArguments()) == "clear" {
			if err := b.recognition.ClearHistory(ctx, user.ID); err != nil {
				b.logger.Error("clear history", zap.Error(err))
			}
			b.sendMessage(chatID, b.tr.T(lang, "historyCleared", nil))
			return
		}
		entries, err := b.recognition.History(ctx, user.ID)
		if err != nil {
			b.logger.Error("list history", zap.Error(err))
		}
		b.sendMessage(chatID, historyText(b.tr, lang, entries))

	case "cancel":
		if _, err := b.users.Cancel(ctx, user.ID, chatID); err != nil {
			b.logger.Error("cancel", zap.Error(err))
		}
		b.sendMessage(chatID, b.tr.T(lang, "cancelled", nil))

	default:
		b.sendMessage(chatID, b.tr.T(lang, "unknownCommand", nil))
	}
}

// handlePhoto обрабатывает входящее фото
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, user *entity.User, fileID string) {
	lang := user.Language
	b.sendMessage(msg.Chat.ID, b.tr.T(lang, "processing", nil))

	imageData, err := b.downloadFile(ctx, fileID)
	if err != nil {
		b.logger.Warn("download photo", zap.Int64("user_id", user.ID), zap.Error(err))
		b.sendMessage(msg.Chat.ID, b.tr.T(lang, string(entity.ReasonProcessingError), nil))
		if _, err := b.users.Cancel(ctx, user.ID, msg.Chat.ID); err != nil {
			b.logger.Error("reset state", zap.Error(err))
		}
		return
	}
	b.logger.Debug("photo received",
		zap.Int64("user_id", user.ID),
		zap.String("size", humanize.Bytes(uint64(len(imageData)))))

	out, err := b.recognition.ProcessPhoto(ctx, user.ID, msg.Chat.ID, imageData)
	if err != nil {
		b.logger.Error("process photo", zap.Int64("user_id", user.ID), zap.Error(err))
		b.sendMessage(msg.Chat.ID, b.tr.T(lang, string(entity.ReasonProcessingError), nil))
		return
	}

	text := recognitionText(b.tr, lang, out)
	if len(out.Highlighted) > 0 {
		b.sendPhoto(msg.Chat.ID, out.Highlighted, text)
		return
	}
	b.sendMessage(msg.Chat.ID, text)
}

// photoFileID возвращает файл наибольшего размера из фото или изображение-документ.
func photoFileID(msg *tgbotapi.Message) (string, bool) {
	if len(msg.Photo) > 0 {
		return msg.Photo[len(msg.Photo)-1].FileID, true
	}
	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		return msg.Document.FileID, true
	}
	return "", false
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	if file.FileSize > maxPhotoBytes {
		return nil, fmt.Errorf("%w: %s", errPhotoTooLarge, humanize.Bytes(uint64(file.FileSize)))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPhotoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(data) > maxPhotoBytes {
		return nil, errPhotoTooLarge
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// sendPhoto отправляет JPEG с подписью
func (b *Bot) sendPhoto(chatID int64, jpeg []byte, caption string) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "bands.jpg", Bytes: jpeg})
	photo.Caption = caption
	if _, err := b.api.Send(photo); err != nil {
		b.logger.Warn("send photo", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendMessage(chatID, caption)
	}
}
