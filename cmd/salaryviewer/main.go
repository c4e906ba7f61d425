package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strconv"
	"strings"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/leeric92/SalaryHistogramExplorer/cmd/salaryviewer/uihelpers"
	"github.com/leeric92/SalaryHistogramExplorer/src/chartimg"
	"github.com/leeric92/SalaryHistogramExplorer/src/config"
	"github.com/leeric92/SalaryHistogramExplorer/src/dataset"
	"github.com/leeric92/SalaryHistogramExplorer/src/filter"
	"github.com/leeric92/SalaryHistogramExplorer/src/flow"
	"github.com/leeric92/SalaryHistogramExplorer/src/histogram"
	"github.com/leeric92/SalaryHistogramExplorer/src/logging"
	"github.com/leeric92/SalaryHistogramExplorer/src/render"
	"github.com/leeric92/SalaryHistogramExplorer/src/types"
)

type uiState struct {
	app      fyne.App
	window   fyne.Window
	cfg      config.Config
	filePath string
	binCount int

	store   *flow.Store
	coord   *flow.Coordinator
	loader  *dataset.Loader
	watcher *dataset.Watcher

	yearGroup *flow.ToggleGroup
	expGroup  *flow.ToggleGroup
	// one checkbox per toggle choice; rebuilt on every dataset load
	yearChecks map[string]*widget.Check
	expChecks  map[string]*widget.Check
	// guards against checkbox callbacks firing while we sync their visual
	// state from the authoritative selection
	syncing bool
	// selections restored from prefs, applied once controls exist
	wantYear, wantExperience string

	histCanvas   *canvas.Image
	summaryLabel *widget.Label
	statusLabel  *widget.Label
	fileLabel    *widget.Label
	loadingBar   *widget.ProgressBarInfinite
	binsSelect   *widget.Select
	yearRow      *fyne.Container
	expRow       *fyne.Container
}

// dark theme wrapper
type darkTheme struct{}

func (d *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}
func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

func main() {
	var (
		fileFlag   string
		configPath string
		snapshot   string
		year       string
		experience string
		bins       int
		logLevel   string
	)
	flag.StringVar(&fileFlag, "file", "", "Path to the salary CSV")
	flag.StringVar(&configPath, "config", "", "Optional config.yaml path")
	flag.StringVar(&snapshot, "snapshot", "", "Render chart PNGs into this directory and exit (headless)")
	flag.StringVar(&year, "year", "", "Snapshot mode: filter to one year")
	flag.StringVar(&experience, "experience", "", "Snapshot mode: filter to one experience level")
	flag.IntVar(&bins, "bins", 0, "Snapshot mode: bin count (0 = data-driven)")
	flag.StringVar(&logLevel, "log", "", "Log level (debug|info|warn|error)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if fileFlag != "" {
		cfg.Data.Path = fileFlag
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logging.SetLevel(cfg.LogLevel)

	if snapshot != "" {
		if err := RunSnapshotMode(cfg, snapshot, year, experience, bins); err != nil {
			fmt.Fprintf(os.Stderr, "snapshot: %v\n", err)
			os.Exit(1)
		}
		return
	}

	a := app.NewWithID("com.salaryhistogram.explorer")
	a.Settings().SetTheme(&darkTheme{})
	w := a.NewWindow("Salary Explorer")
	w.Resize(fyne.NewSize(1100, 720))

	state := &uiState{
		app:        a,
		window:     w,
		cfg:        cfg,
		filePath:   cfg.Data.Path,
		binCount:   cfg.Histogram.Bins,
		loader:     dataset.NewLoader(cfg.Mapping()),
		yearChecks: map[string]*widget.Check{},
		expChecks:  map[string]*widget.Check{},
	}
	loadPrefs(state)

	state.store = flow.NewStore(types.Dataset{})
	state.coord = flow.NewCoordinator(state.store)
	state.coord.RegisterGroup("year", filter.YearEquals(cfg.Groups.YearField))
	state.coord.RegisterGroup("experience", filter.FieldEquals(cfg.Groups.StringField))

	// widgets
	state.fileLabel = widget.NewLabel(uihelpers.TruncatePath(state.filePath, 60))
	state.summaryLabel = widget.NewLabel("")
	state.statusLabel = widget.NewLabel("")
	state.loadingBar = widget.NewProgressBarInfinite()
	state.loadingBar.Hide()

	state.histCanvas = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
	state.histCanvas.FillMode = canvas.ImageFillContain
	state.histCanvas.SetMinSize(fyne.NewSize(900, 420))

	state.binsSelect = widget.NewSelect(uihelpers.BinChoices(), func(v string) {
		state.binCount = uihelpers.ParseBinChoice(v)
		savePrefs(state)
		refreshChart(state, state.store.Snapshot())
	})
	state.binsSelect.Selected = uihelpers.FormatBinChoice(state.binCount)

	state.yearRow = container.NewHBox()
	state.expRow = container.NewHBox()

	top := container.NewHBox(
		widget.NewButton("Open…", func() { openFileDialog(state) }),
		widget.NewButton("Reload", func() { loadData(state) }),
		widget.NewLabel("Bins:"), state.binsSelect,
		widget.NewLabel("File:"), state.fileLabel,
		state.loadingBar,
	)
	controls := container.NewVBox(
		container.NewHBox(widget.NewLabel("Year:"), state.yearRow),
		container.NewHBox(widget.NewLabel("Experience:"), state.expRow),
	)
	content := container.NewBorder(
		container.NewVBox(top, controls),
		container.NewVBox(state.summaryLabel, state.statusLabel),
		nil, nil,
		state.histCanvas,
	)
	w.SetContent(content)

	// authoritative state flows down: every store notification repaints the
	// chart and resyncs the toggle checkboxes
	state.store.Subscribe(func(snap flow.Snapshot) {
		fyne.Do(func() {
			refreshChart(state, snap)
			syncChecks(state)
		})
	})

	buildMenus(state)
	w.SetOnClosed(func() {
		savePrefs(state)
		if state.watcher != nil {
			state.watcher.Close()
		}
	})

	loadData(state)
	startWatcher(state)

	w.ShowAndRun()
}

// loadData kicks off a background load of the current file. A second call
// while one is in flight is dropped; the UI just keeps its spinner.
func loadData(state *uiState) {
	state.loadingBar.Show()
	started := state.loader.LoadAsync(state.filePath, func(ds types.Dataset, err error) {
		fyne.Do(func() {
			state.loadingBar.Hide()
			if err != nil {
				dialog.ShowError(err, state.window)
				state.statusLabel.SetText(fmt.Sprintf("load failed: %v", err))
				return
			}
			rebuildControls(state, ds)
			state.store.ReplaceDataset(ds)
			addRecentFile(state, ds.Source)
			savePrefs(state)
		})
	})
	if !started {
		logging.Debugf("viewer: load already in flight for %s", state.filePath)
	}
}

// startWatcher (re)subscribes to file change events for the current path.
func startWatcher(state *uiState) {
	if state.watcher != nil {
		state.watcher.Close()
		state.watcher = nil
	}
	w, err := dataset.Watch(state.filePath, func() {
		logging.Infof("viewer: %s changed on disk, reloading", state.filePath)
		fyne.Do(func() { loadData(state) })
	})
	if err != nil {
		logging.Warnf("viewer: file watch disabled: %v", err)
		return
	}
	state.watcher = w
}

// rebuildControls rebuilds the toggle groups and their checkboxes from a
// freshly loaded dataset. The previous selection is replayed when its choice
// still exists; a vanished choice clears that group.
func rebuildControls(state *uiState, ds types.Dataset) {
	years := make([]string, 0)
	for _, y := range histogram.Years(ds, state.cfg.Groups.YearField) {
		years = append(years, strconv.Itoa(y))
	}
	exps := histogram.DistinctStrings(ds, state.cfg.Groups.StringField)

	prevYear := state.wantYear
	if state.yearGroup != nil {
		prevYear = state.yearGroup.Active()
	}
	prevExp := state.wantExperience
	if state.expGroup != nil {
		prevExp = state.expGroup.Active()
	}
	state.wantYear, state.wantExperience = "", ""

	onToggle := func(ev flow.ToggleEvent) {
		state.coord.HandleToggle(ev)
		syncChecks(state)
		savePrefs(state)
	}
	state.yearGroup = flow.NewToggleGroup("year", years, onToggle)
	state.expGroup = flow.NewToggleGroup("experience", exps, onToggle)

	state.yearChecks = buildCheckRow(state, state.yearRow, state.yearGroup)
	state.expChecks = buildCheckRow(state, state.expRow, state.expGroup)

	restoreSelection(state, state.yearGroup, "year", prevYear)
	restoreSelection(state, state.expGroup, "experience", prevExp)
	syncChecks(state)
}

func buildCheckRow(state *uiState, row *fyne.Container, group *flow.ToggleGroup) map[string]*widget.Check {
	checks := map[string]*widget.Check{}
	row.Objects = nil
	for _, choice := range group.Choices() {
		choice := choice
		chk := widget.NewCheck(choice, func(bool) {
			if state.syncing {
				return
			}
			// both checking and unchecking route through Select: clicking
			// the active choice is the toggle-off path
			group.Select(choice)
		})
		checks[choice] = chk
		row.Add(chk)
	}
	row.Refresh()
	return checks
}

func restoreSelection(state *uiState, group *flow.ToggleGroup, id, prev string) {
	if prev == "" {
		return
	}
	for _, c := range group.Choices() {
		if c == prev {
			group.Select(prev)
			return
		}
	}
	// choice no longer exists in the new dataset
	state.coord.HandleToggle(flow.ToggleEvent{Group: id, Cleared: true})
}

// syncChecks repaints every checkbox from the authoritative selection. The
// coordinator's view wins over the groups' local echo.
func syncChecks(state *uiState) {
	sel := state.coord.Selection()
	if state.yearGroup != nil {
		state.yearGroup.SyncAuthoritative(sel["year"])
	}
	if state.expGroup != nil {
		state.expGroup.SyncAuthoritative(sel["experience"])
	}
	state.syncing = true
	for choice, chk := range state.yearChecks {
		chk.SetChecked(choice == sel["year"])
	}
	for choice, chk := range state.expChecks {
		chk.SetChecked(choice == sel["experience"])
	}
	state.syncing = false
}

// refreshChart recomputes the histogram for the snapshot and swaps the
// rendered image in. All chart content derives from the snapshot; nothing
// is patched incrementally.
func refreshChart(state *uiState, snap flow.Snapshot) {
	hg := histogram.Compute(snap.Filtered, histogram.BinConfig{
		Field: state.cfg.Histogram.Field,
		Bins:  state.binCount,
	})
	opts := state.cfg.RenderOptions()
	opts.Width, opts.Height = chartSize(state)
	frame := render.Layout(hg, opts)
	img := chartimg.Rasterize(frame)
	state.histCanvas.Image = img
	state.histCanvas.SetMinSize(fyne.NewSize(float32(opts.Width), float32(opts.Height)))
	state.histCanvas.Refresh()

	s := histogram.Stats(snap.Filtered, state.cfg.Histogram.Field)
	state.summaryLabel.SetText(uihelpers.SummaryLine(s, snap.Dataset.Len()))
	status := fmt.Sprintf("%d records", snap.Dataset.Len())
	if snap.Dataset.RowsDropped > 0 {
		status += fmt.Sprintf(" (%d rows dropped at load)", snap.Dataset.RowsDropped)
	}
	if key := snap.Filter.Key(); key != "" {
		status += " · filter " + key
	}
	state.statusLabel.SetText(status)
	state.window.SetTitle("Salary Explorer — " +
		histogram.YearSpanLabel(snap.Dataset, state.cfg.Groups.YearField))
}

// chartSize sizes the chart from the window width so wide windows get more
// X-axis space.
func chartSize(state *uiState) (int, int) {
	if state == nil || state.window == nil || state.window.Canvas() == nil {
		return uihelpers.ComputeChartDimensions(0)
	}
	sz := state.window.Canvas().Size()
	return uihelpers.ComputeChartDimensions(int(sz.Width*0.95) - 12)
}

// menus and dialogs
func buildMenus(state *uiState) {
	if state == nil || state.window == nil || state.app == nil {
		return
	}
	var items []*fyne.MenuItem
	for _, f := range recentFiles(state) {
		f := f
		items = append(items, fyne.NewMenuItem(uihelpers.TruncatePath(f, 60), func() {
			setFile(state, f)
		}))
	}
	clearRecent := fyne.NewMenuItem("Clear Recent", func() {
		state.app.Preferences().SetString("recentFiles", "")
		buildMenus(state)
	})
	recentMenu := fyne.NewMenu("Open Recent", append(items, clearRecent)...)
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(state) }),
		fyne.NewMenuItem("Reload", func() { loadData(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Chart…", func() { exportChartPNG(state, "salary_histogram.png") }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu, recentMenu))

	canv := state.window.Canvas()
	if canv != nil {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { openFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { openFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { loadData(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { loadData(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { state.window.Close() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { state.window.Close() })
	}
}

func setFile(state *uiState, path string) {
	state.filePath = path
	state.fileLabel.SetText(uihelpers.TruncatePath(path, 60))
	savePrefs(state)
	loadData(state)
	startWatcher(state)
}

func openFileDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		setFile(state, rc.URI().Path())
	}, state.window)
	d.Show()
}

func exportChartPNG(state *uiState, defaultName string) {
	if state == nil || state.window == nil || state.histCanvas == nil || state.histCanvas.Image == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		_ = png.Encode(wc, state.histCanvas.Image)
	}, state.window)
	fs.SetFileName(defaultName)
	fs.Show()
}

// recent files helpers
func recentFiles(state *uiState) []string {
	raw := state.app.Preferences().StringWithFallback("recentFiles", "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func addRecentFile(state *uiState, path string) {
	if path == "" {
		return
	}
	list := recentFiles(state)
	filtered := []string{path}
	for _, f := range list {
		if f != path && len(filtered) < 10 {
			filtered = append(filtered, f)
		}
	}
	state.app.Preferences().SetString("recentFiles", strings.Join(filtered, "\n"))
	buildMenus(state)
}

// prefs
func savePrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	prefs.SetString("lastFile", state.filePath)
	prefs.SetInt("binCount", state.binCount)
	if state.yearGroup != nil {
		prefs.SetString("lastYear", state.yearGroup.Active())
	}
	if state.expGroup != nil {
		prefs.SetString("lastExperience", state.expGroup.Active())
	}
}

func loadPrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	if f := prefs.StringWithFallback("lastFile", state.filePath); f != "" {
		state.filePath = f
	}
	if n := prefs.IntWithFallback("binCount", state.binCount); n >= 0 {
		state.binCount = n
	}
	state.wantYear = prefs.StringWithFallback("lastYear", "")
	state.wantExperience = prefs.StringWithFallback("lastExperience", "")
}
