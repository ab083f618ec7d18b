package entity

import "time"

// ReadingSource откуда получена последовательность цветов
type ReadingSource string

const (
	SourcePhoto  ReadingSource = "photo"
	SourceManual ReadingSource = "manual"
	SourceSwatch ReadingSource = "swatch"
)

// HistoryEntry запись истории измерений пользователя
type HistoryEntry struct {
	ID        string
	Colors    []Color
	Mode      BandMode
	Reading   ResistanceReading
	Source    ReadingSource
	CreatedAt time.Time
}
