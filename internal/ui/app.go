package ui

import (
	"fmt"
	"io"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"VectorBoard/internal/export"
	"VectorBoard/internal/logging"
	"VectorBoard/internal/state"
	"VectorBoard/internal/tool"
)

// App is the main window around one session.
type App struct {
	Window  fyne.Window
	Board   *BoardWidget
	Toolbar *Toolbar
	Layers  *LayerList
	Status  *widget.Label

	session *state.Session
}

// NewApp builds the editor window. shareLink is shown in the status bar
// when the live viewer is running.
func NewApp(a fyne.App, s *state.Session, shareLink string) *App {
	w := a.NewWindow("VectorBoard")
	w.Resize(fyne.NewSize(1200, 800))

	ui := &App{Window: w, session: s, Status: widget.NewLabel("Ready")}
	ui.Board = NewBoardWidget(s)
	ui.Board.OnPending = ui.askConfirmation
	ui.Layers = NewLayerList(s)
	ui.Toolbar = NewToolbar(s, ToolbarActions{
		Import:    ui.importText,
		Export:    ui.exportText,
		ExportPDF: ui.exportPDF,
		Save:      ui.save,
		Projects:  ui.openProject,
		Clear:     ui.clear,
	})

	s.OnChange(func() {
		fyne.Do(func() {
			ui.Board.Refresh()
			ui.Layers.Reload()
		})
	})

	status := container.NewHBox(ui.Status)
	if shareLink != "" {
		status.Add(widget.NewLabel("Viewer: " + shareLink))
	}
	board := container.NewScroll(ui.Board)
	split := container.NewHSplit(board, ui.Layers.List)
	split.Offset = 0.8
	w.SetContent(container.NewBorder(ui.Toolbar.Object(), status, nil, nil, split))
	ui.setTitle()
	return ui
}

// NewViewer builds a read-only window for a remote drawing.
func NewViewer(a fyne.App, s *state.Session, source string) *App {
	w := a.NewWindow("VectorBoard viewer - " + source)
	w.Resize(fyne.NewSize(1000, 700))
	ui := &App{Window: w, session: s, Status: widget.NewLabel("Connecting to " + source)}
	ui.Board = NewBoardWidget(s)
	ui.Board.ReadOnly = true
	s.OnChange(func() { fyne.Do(ui.Board.Refresh) })
	w.SetContent(container.NewBorder(nil, ui.Status, nil, nil, container.NewScroll(ui.Board)))
	return ui
}

// SetStatus updates the status bar from any goroutine.
func (ui *App) SetStatus(text string) {
	fyne.Do(func() { ui.Status.SetText(text) })
}

func (ui *App) setTitle() {
	ui.Window.SetTitle(fmt.Sprintf("VectorBoard - %s", ui.session.Project()))
}

// askConfirmation opens the dialog for a pending rotate, flip or erase.
func (ui *App) askConfirmation(p tool.Pending) {
	s := ui.session
	switch p {
	case tool.PendingRotate:
		angle := widget.NewEntry()
		angle.SetPlaceHolder("degrees")
		dialog.ShowForm("Rotate", "Rotate", "Cancel",
			[]*widget.FormItem{widget.NewFormItem("Angle", angle)},
			func(ok bool) {
				if !ok {
					s.Cancel()
					return
				}
				if err := s.ConfirmRotate(angle.Text); err != nil {
					dialog.ShowError(err, ui.Window)
					ui.askConfirmation(tool.PendingRotate)
				}
			}, ui.Window)
	case tool.PendingFlip:
		dir := widget.NewRadioGroup([]string{"horizontal", "vertical"}, nil)
		dir.SetSelected("horizontal")
		dialog.ShowForm("Flip", "Flip", "Cancel",
			[]*widget.FormItem{widget.NewFormItem("Direction", dir)},
			func(ok bool) {
				if !ok {
					s.Cancel()
					return
				}
				if err := s.ConfirmFlip(dir.Selected); err != nil {
					dialog.ShowError(err, ui.Window)
				}
			}, ui.Window)
	case tool.PendingErase:
		dialog.ShowConfirm("Erase", "Delete the highlighted shape?", func(ok bool) {
			if !ok {
				s.Cancel()
				return
			}
			if err := s.ConfirmErase(); err != nil {
				dialog.ShowError(err, ui.Window)
			}
		}, ui.Window)
	}
}

func (ui *App) importText() {
	if ui.session.Importing() {
		ui.SetStatus("An import is already running")
		return
	}
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.Window)
			return
		}
		if r == nil {
			return
		}
		ui.ImportFrom(r)
	}, ui.Window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".txt", ".vb"}))
	d.Show()
}

// ImportFrom loads an interchange file in the background and closes r.
func (ui *App) ImportFrom(r io.ReadCloser) {
	err := ui.session.ImportAsync(r, func(err error) {
		r.Close()
		if err != nil {
			logging.For("ui").Warn("import failed", "err", err)
			ui.SetStatus("Import failed: " + err.Error())
			return
		}
		ui.SetStatus(fmt.Sprintf("Imported %d shapes", len(ui.session.Layers())))
	})
	if err != nil {
		r.Close()
		ui.SetStatus(err.Error())
		return
	}
	ui.SetStatus("Importing...")
}

func (ui *App) exportText() {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.Window)
			return
		}
		if w == nil {
			return
		}
		if err := ui.ExportTo(w); err != nil {
			dialog.ShowError(err, ui.Window)
		}
	}, ui.Window)
	d.SetFileName(ui.session.Project() + ".txt")
	d.Show()
}

// ExportTo writes the interchange text to w and closes it.
func (ui *App) ExportTo(w io.WriteCloser) error {
	err := ui.session.ExportText(w)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	ui.SetStatus(fmt.Sprintf("Exported %d shapes", len(ui.session.Layers())))
	return nil
}

func (ui *App) exportPDF() {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.Window)
			return
		}
		if w == nil {
			return
		}
		if err := ui.ExportPDFTo(w); err != nil {
			dialog.ShowError(err, ui.Window)
		}
	}, ui.Window)
	d.SetFileName(ui.session.Project() + ".pdf")
	d.Show()
}

// ExportPDFTo writes the drawing as PDF to w and closes it.
func (ui *App) ExportPDFTo(w io.WriteCloser) error {
	d, width, height := ui.session.Snapshot()
	err := export.PDF(w, &d, width, height, export.Options{
		Background: ui.session.Background(),
		Title:      ui.session.Project(),
	})
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	ui.SetStatus("PDF exported")
	return nil
}

func (ui *App) save() {
	if err := ui.session.Save(); err != nil {
		dialog.ShowError(err, ui.Window)
		return
	}
	ui.SetStatus("Saved " + ui.session.Project())
}

// openProject lets the user pick a saved project or name a new one.
func (ui *App) openProject() {
	name := widget.NewSelectEntry(ui.session.Projects())
	name.SetText(ui.session.Project())
	dialog.ShowForm("Open project", "Open", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Project", name)},
		func(ok bool) {
			if !ok {
				return
			}
			if err := ui.SwitchProject(name.Text); err != nil {
				dialog.ShowError(err, ui.Window)
			}
		}, ui.Window)
}

// SwitchProject saves the open project and opens another.
func (ui *App) SwitchProject(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("project name is empty")
	}
	if err := ui.session.SwitchProject(name); err != nil {
		return err
	}
	ui.setTitle()
	ui.SetStatus("Opened " + name)
	return nil
}

func (ui *App) clear() {
	dialog.ShowConfirm("Clear", "Remove every shape from the drawing?", func(ok bool) {
		if ok {
			ui.session.Clear()
		}
	}, ui.Window)
}

// Run shows the window and blocks until the app quits.
func (ui *App) Run() {
	ui.Window.ShowAndRun()
}
