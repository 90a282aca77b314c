// Command spiralviewer is a desktop viewer for training-run metrics:
// open a CSV/XLSX log, tick the metrics to show, pick a smoothing
// window and y-scale, and the figure re-renders live.
package main

import (
	"flag"
	"image"
	"image/color"
	png "image/png"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/urw7rs/spiralpp/src/metrics"
	"github.com/urw7rs/spiralpp/src/plot"
)

type uiState struct {
	app    fyne.App
	window fyne.Window

	filePath string
	ds       *metrics.Dataset

	keyOrder []string
	selected map[string]bool

	smoothWindow int
	logScale     bool

	imgCanvas *canvas.Image
	checksBox *fyne.Container
	fileLabel *widget.Label
}

var windowChoices = []string{"Off", "10", "20", "50", "100", "200"}

func main() {
	var fileFlag string
	flag.StringVar(&fileFlag, "file", "", "Path to metrics CSV/XLSX")
	var levelFlag string
	flag.StringVar(&levelFlag, "log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()
	metrics.SetLogLevel(levelFlag)

	a := app.NewWithID("com.spiralpp.viewer")
	w := a.NewWindow("spiralpp metrics viewer")
	w.Resize(fyne.NewSize(1150, 820))

	state := &uiState{
		app:          a,
		window:       w,
		filePath:     fileFlag,
		selected:     map[string]bool{},
		smoothWindow: a.Preferences().IntWithFallback("window", 50),
		logScale:     a.Preferences().BoolWithFallback("logScale", false),
	}
	if state.filePath == "" {
		state.filePath = a.Preferences().StringWithFallback("lastFile", "")
	}

	state.fileLabel = widget.NewLabel(truncatePath(state.filePath, 60))
	state.imgCanvas = canvas.NewImageFromImage(blank(1000, 320))
	state.imgCanvas.FillMode = canvas.ImageFillOriginal
	state.checksBox = container.NewVBox()

	windowSelect := widget.NewSelect(windowChoices, nil)
	windowSelect.Selected = windowChoiceFor(state.smoothWindow)
	windowSelect.OnChanged = func(v string) {
		state.smoothWindow = windowFromChoice(v)
		savePrefs(state)
		redraw(state)
	}
	logChk := widget.NewCheck("Log scale", nil)
	logChk.SetChecked(state.logScale)
	logChk.OnChanged = func(b bool) {
		state.logScale = b
		savePrefs(state)
		redraw(state)
	}
	exportBtn := widget.NewButton("Export PNG…", func() { exportFigurePNG(state) })

	controls := container.NewHBox(
		widget.NewLabel("Smoothing:"), windowSelect,
		logChk,
		exportBtn,
		state.fileLabel,
	)
	left := container.NewVScroll(state.checksBox)
	left.SetMinSize(fyne.NewSize(220, 0))
	center := container.NewScroll(state.imgCanvas)
	w.SetContent(container.NewBorder(controls, nil, left, nil, center))

	buildMenus(state)
	if state.filePath != "" {
		loadAll(state)
	}
	w.ShowAndRun()
}

func buildMenus(state *uiState) {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(state) }),
		fyne.NewMenuItem("Reload", func() { loadAll(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Figure…", func() { exportFigurePNG(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu))

	canv := state.window.Canvas()
	if canv != nil {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { openFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { openFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { loadAll(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { loadAll(state) })
	}
}

func openFileDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		state.filePath = rc.URI().Path()
		state.fileLabel.SetText(truncatePath(state.filePath, 60))
		savePrefs(state)
		loadAll(state)
	}, state.window)
	d.Show()
}

// loadAll reads the metrics file, rebuilds the metric checkboxes, and
// redraws. Selections for columns still present in the file survive a
// reload; a fresh file starts with the first few metrics ticked.
func loadAll(state *uiState) {
	if state.filePath == "" {
		return
	}
	ds, err := metrics.Load(state.filePath)
	if err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	state.ds = ds
	state.keyOrder = ds.Keys()
	metrics.Infof("loaded %s: %d rows, %d metrics", state.filePath, ds.Len(), len(state.keyOrder))

	kept := map[string]bool{}
	any := false
	for _, k := range state.keyOrder {
		if state.selected[k] {
			kept[k] = true
			any = true
		}
	}
	if !any {
		for i, k := range state.keyOrder {
			if i >= 4 {
				break
			}
			kept[k] = true
		}
	}
	state.selected = kept

	rebuildChecks(state)
	redraw(state)
}

func rebuildChecks(state *uiState) {
	objs := make([]fyne.CanvasObject, 0, len(state.keyOrder))
	for _, key := range state.keyOrder {
		key := key
		chk := widget.NewCheck(key, func(b bool) {
			state.selected[key] = b
			redraw(state)
		})
		chk.SetChecked(state.selected[key])
		objs = append(objs, chk)
	}
	state.checksBox.Objects = objs
	state.checksBox.Refresh()
}

func redraw(state *uiState) {
	if state.ds == nil || state.imgCanvas == nil {
		return
	}
	keys := selectedKeys(state.selected, state.keyOrder)
	cw, chh := figureChartSize(state)
	if len(keys) == 0 {
		state.imgCanvas.Image = blank(cw, chh)
		state.imgCanvas.Refresh()
		return
	}
	req := plot.Multi(keys, nil, plot.Options{
		Window: state.smoothWindow,
		Log:    state.logScale,
		Width:  cw,
		Height: chh,
	})
	img, err := plot.Render(state.ds, req)
	if err != nil {
		metrics.Errorf("render failed: %v; showing blank", err)
		img = blank(cw, chh)
	}
	state.imgCanvas.Image = img
	state.imgCanvas.SetMinSize(fyne.NewSize(float32(img.Bounds().Dx()), float32(img.Bounds().Dy())))
	state.imgCanvas.Refresh()
}

// figureChartSize sizes each chart to the window width so the x-axis
// gets the space: ~90% of width minus the metric list, clamped.
func figureChartSize(state *uiState) (int, int) {
	if state == nil || state.window == nil || state.window.Canvas() == nil {
		return 1000, 320
	}
	sz := state.window.Canvas().Size()
	return viewerChartSize(sz.Width)
}

func exportFigurePNG(state *uiState) {
	if state == nil || state.imgCanvas == nil || state.imgCanvas.Image == nil {
		dialog.ShowInformation("Export", "No figure to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		_ = png.Encode(wc, state.imgCanvas.Image)
	}, state.window)
	fs.SetFileName("figure.png")
	fs.Show()
}

func savePrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	prefs.SetString("lastFile", state.filePath)
	prefs.SetInt("window", state.smoothWindow)
	prefs.SetBool("logScale", state.logScale)
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 250, G: 250, B: 250, A: 255})
		}
	}
	return img
}
