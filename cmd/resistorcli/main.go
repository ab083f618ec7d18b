// Command resistorcli считает номиналы резисторов по цветам, образцам и фотографиям.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/dustin/go-humanize"
	golocale "github.com/jeandeaual/go-locale"
	"github.com/pterm/pterm"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"resistor-vision/config"
	"resistor-vision/internal/domain/entity"
	"resistor-vision/internal/infrastructure/inference"
	"resistor-vision/internal/infrastructure/vision"
	"resistor-vision/internal/logger"
	"resistor-vision/internal/messages"
	"resistor-vision/internal/recognition"
	"resistor-vision/internal/resistance"
)

const usage = `usage: resistorcli [-lang ru|en|pl] <command> [args]

commands:
  decode <color> <color> <color> [...]   value of a 3–6 band code
  swatch <r,g,b> <r,g,b> <r,g,b> [...]   classify RGB samples and decode them
  sample [-bands N] <photo>              sample bands along the centre strip of a photo
  scan [-workers N] <photo> [...]        run both detection models on photos`

func main() {
	lang := flag.String("lang", "", "output language (default: system locale)")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	tr, err := messages.NewTranslator()
	if err != nil {
		pterm.Error.Printf("Failed to load translations: %v\n", err)
		os.Exit(1)
	}
	c := &cli{tr: tr, lang: tr.Match(systemLanguage(*lang))}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	args := flag.Args()
	switch args[0] {
	case "decode":
		err = c.decode(args[1:])
	case "swatch":
		err = c.swatch(args[1:])
	case "sample":
		err = c.sample(ctx, args[1:])
	case "scan":
		err = c.scan(ctx, args[1:])
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

// systemLanguage возвращает явно заданный язык или язык системы.
func systemLanguage(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if lang, err := golocale.GetLanguage(); err == nil {
		return lang
	}
	return ""
}

type cli struct {
	tr   *messages.Translator
	lang string
}

func (c *cli) decode(args []string) error {
	colors, err := entity.ParseColors(args)
	if err != nil {
		return err
	}
	return c.report(colors)
}

func (c *cli) swatch(args []string) error {
	samples := make([]entity.RGB, 0, len(args))
	for _, a := range args {
		rgb, err := parseRGB(a)
		if err != nil {
			return err
		}
		samples = append(samples, rgb)
	}
	colors, err := recognition.ClassifySwatches(samples)
	if err != nil {
		return err
	}
	return c.report(colors)
}

func (c *cli) sample(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sample", flag.ContinueOnError)
	bands := fs.Int("bands", int(entity.DefaultBandMode), "number of bands to sample")
	side := fs.Int("side", recognition.DefaultInputSide, "working image side")
	crop := fs.Float64("crop", config.DefaultCenterCropRatio, "centre crop ratio")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("sample needs exactly one photo")
	}
	if _, err := entity.ParseBandMode(*bands); err != nil {
		return err
	}

	photo, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	buf, err := vision.NewImageDecoder(*side, *crop).Decode(ctx, photo)
	if err != nil {
		return err
	}

	samples := recognition.SampleBands(buf, recognition.CenterStrip(buf.Side()), *bands)
	for i, s := range samples {
		pterm.Info.Printf("band %d: %s rgb(%.0f,%.0f,%.0f)\n", i+1, swatchBlock(s), s.R, s.G, s.B)
	}
	colors, err := recognition.ClassifySwatches(samples)
	if err != nil {
		return err
	}
	return c.report(colors)
}

// scanRow строка итоговой таблицы scan
type scanRow struct {
	file   string
	size   int
	result *entity.Recognition
	value  string
	err    error
}

func (c *cli) scan(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	workers := fs.Int("workers", 2, "photos processed concurrently")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("scan needs at least one photo")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	runners, err := inference.NewRunners(inference.Settings{
		URL:            cfg.InferenceURL,
		LocatorPath:    cfg.LocatorModelPath,
		ClassifierPath: cfg.ClassifierModelPath,
		Threads:        cfg.ModelThreads,
	})
	if err != nil {
		return err
	}
	defer func() { _ = runners.Close() }()

	decoder := vision.NewImageDecoder(cfg.InputSide, cfg.CenterCropRatio)
	recognizer := recognition.NewRecognizer(runners.Locator, runners.Classifier, cfg.RecognitionConfig(), log.Named("recognition"))

	files := fs.Args()
	rows := make([]scanRow, len(files))
	var mu sync.Mutex

	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Scanning %d photo(s)", len(files)))
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(*workers, 1))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			row := scanRow{file: filepath.Base(file)}
			defer func() {
				mu.Lock()
				rows[i] = row
				done++
				if spinner != nil {
					spinner.UpdateText(fmt.Sprintf("Scanned %d/%d", done, len(files)))
				}
				mu.Unlock()
			}()

			photo, err := os.ReadFile(file)
			if err != nil {
				row.err = err
				return nil
			}
			row.size = len(photo)

			buf, err := decoder.Decode(gctx, photo)
			if err != nil {
				row.err = err
				return nil
			}
			result, err := recognizer.Recognize(gctx, buf)
			if err != nil {
				// Сбой модели прерывает весь прогон
				log.Error("recognition failed", zap.String("file", file), zap.Error(err))
				row.err = err
				return err
			}
			row.result = result
			if result.Success {
				reading, err := resistance.Decode(result.Mode, result.Colors)
				if err != nil {
					row.err = err
					return nil
				}
				row.value = resistance.Format(reading)
			}
			return nil
		})
	}
	waitErr := g.Wait()
	if spinner != nil {
		_ = spinner.Stop()
	}

	data := pterm.TableData{{"File", "Size", "Bands", "Colors", "Value", "Status"}}
	for _, r := range rows {
		data = append(data, c.scanRowCells(r))
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}
	return waitErr
}

func (c *cli) scanRowCells(r scanRow) []string {
	size := "—"
	if r.size > 0 {
		size = humanize.Bytes(uint64(r.size))
	}
	switch {
	case r.err != nil:
		return []string{r.file, size, "—", "—", "—", pterm.Red(r.err.Error())}
	case r.result == nil:
		return []string{r.file, size, "—", "—", "—", pterm.Gray("skipped")}
	case !r.result.Success:
		return []string{r.file, size, strconv.Itoa(r.result.BandCount), c.tr.ColorNames(c.lang, r.result.Colors), "—",
			pterm.Yellow(c.tr.T(c.lang, string(r.result.Reason), nil))}
	default:
		return []string{r.file, size, strconv.Itoa(r.result.BandCount), c.tr.ColorNames(c.lang, r.result.Colors), r.value,
			pterm.Green("ok")}
	}
}

// report печатает таблицу полос и номинал.
func (c *cli) report(colors []entity.Color) error {
	mode, err := entity.ParseBandMode(len(colors))
	if err != nil {
		return err
	}
	if err := resistance.Validate(mode, colors); err != nil {
		return err
	}
	reading, err := resistance.Decode(mode, colors)
	if err != nil {
		return err
	}

	roles := resistance.Roles(mode)
	data := pterm.TableData{{"#", "Color", "", "Role"}}
	for i, col := range colors {
		code := col.Code()
		data = append(data, []string{
			strconv.Itoa(i + 1),
			c.tr.ColorName(c.lang, col),
			swatchBlock(code.Centroid),
			roles[i].String(),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}
	pterm.Success.Println(resistance.Format(reading))
	return nil
}

func swatchBlock(rgb entity.RGB) string {
	return pterm.NewRGB(uint8(rgb.R), uint8(rgb.G), uint8(rgb.B)).Sprint("███")
}

// parseRGB разбирает "r,g,b" с компонентами 0–255.
func parseRGB(s string) (entity.RGB, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return entity.RGB{}, fmt.Errorf("rgb %q: want r,g,b", s)
	}
	var v [3]float64
	for i, p := range parts {
		n, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return entity.RGB{}, fmt.Errorf("rgb %q: %w", s, err)
		}
		if n < 0 || n > 255 {
			return entity.RGB{}, fmt.Errorf("rgb %q: component %v out of range", s, n)
		}
		v[i] = n
	}
	return entity.RGB{R: v[0], G: v[1], B: v[2]}, nil
}
