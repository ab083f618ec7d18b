package entity

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateMainMenu      UserState = "main_menu"      // В главном меню
	StateAwaitingPhoto UserState = "awaiting_photo" // Ожидание фото резистора
	StateProcessing    UserState = "processing"     // Обработка изображения
)

// User представляет пользователя бота
type User struct {
	ID       int64     // Telegram User ID
	ChatID   int64     // Telegram Chat ID
	State    UserState // Текущее состояние пользователя
	Language string    // Код языка из Telegram
	Mode     BandMode  // Выбранное число полос
	Colors   []Color   // Текущая последовательность цветов
}

// NewUser создаёт нового пользователя с начальным состоянием
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
		Mode:   DefaultBandMode,
		Colors: DefaultColors(DefaultBandMode),
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// SetMode меняет число полос и сбрасывает цвета на значения по умолчанию
func (u *User) SetMode(mode BandMode) {
	u.Mode = mode
	u.Colors = DefaultColors(mode)
}

// SetColors сохраняет последовательность цветов вместе с режимом
func (u *User) SetColors(colors []Color, mode BandMode) {
	u.Colors = append([]Color(nil), colors...)
	u.Mode = mode
}
