//go:build js && wasm

package main

import (
	"encoding/json"
	"log/slog"
	"os"
	"syscall/js"

	"github.com/keygrid/keygrid/sheet-go/internal/config"
	"github.com/keygrid/keygrid/sheet-go/internal/curve"
	"github.com/keygrid/keygrid/sheet-go/internal/sheet"
)

// The browser event loop is single threaded, so binding the view directly
// is safe: every call lands on the same goroutine.
var (
	model  *curve.Model
	layout *sheet.TableLayout
	stack  *sheet.Stack
	view   *sheet.View
)

// jsTimeline forwards indicator seeks to an optional host callback.
type jsTimeline struct{}

func (jsTimeline) Seek(frame float64) {
	cb := js.Global().Get("keygridOnSeek")
	if cb.Type() == js.TypeFunction {
		cb.Invoke(frame)
	}
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func main() {
	cfg := config.Config{ClickTolerancePx: 5, KeyframeGlyphPx: 14}
	model = curve.NewSampleModel()
	layout = sheet.NewTableLayout(model, 0)
	stack = sheet.NewStack(model)
	view = sheet.NewView(model, layout, jsTimeline{}, stack, cfg, newLogger())

	api := js.Global().Get("Object").New()

	// --- Events (frontend → view) ---
	api.Set("mousePress", js.FuncOf(mousePress))
	api.Set("mouseMove", js.FuncOf(mouseMove))
	api.Set("mouseRelease", js.FuncOf(mouseRelease))
	api.Set("wheel", js.FuncOf(wheel))
	api.Set("resize", js.FuncOf(resize))
	api.Set("seek", js.FuncOf(seek))
	api.Set("selectAll", js.FuncOf(selectAll))
	api.Set("clearSelection", js.FuncOf(clearSelection))
	api.Set("deleteSelectedKeys", js.FuncOf(deleteSelectedKeys))
	api.Set("setInterpolation", js.FuncOf(setInterpolation))
	api.Set("undo", js.FuncOf(undo))
	api.Set("redo", js.FuncOf(redo))
	api.Set("frameAll", js.FuncOf(frameAll))
	api.Set("frameSelection", js.FuncOf(frameSelection))
	api.Set("setNodeExpanded", js.FuncOf(setNodeExpanded))
	api.Set("setParamExpanded", js.FuncOf(setParamExpanded))
	api.Set("setPanelOpen", js.FuncOf(setPanelOpen))

	// --- Queries (frontend ← view) ---
	api.Set("renderState", js.FuncOf(renderState))
	api.Set("getFrame", js.FuncOf(getFrame))
	api.Set("canUndo", js.FuncOf(canUndo))
	api.Set("canRedo", js.FuncOf(canRedo))

	js.Global().Set("keygridSheet", api)
	js.Global().Set("keygridWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func mods(args []js.Value, at int) sheet.Modifiers {
	var m sheet.Modifiers
	if len(args) > at {
		m.Shift = args[at].Truthy()
	}
	if len(args) > at+1 {
		m.Ctrl = args[at+1].Truthy()
	}
	return m
}

func mousePress(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	pt := sheet.Point{X: args[0].Float(), Y: args[1].Float()}
	view.MousePress(pt, sheet.MouseButton(args[2].Int()), mods(args, 3))
	return nil
}

func mouseMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	pt := sheet.Point{X: args[0].Float(), Y: args[1].Float()}
	view.MouseMove(pt, mods(args, 2))
	return nil
}

func mouseRelease(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	pt := sheet.Point{X: args[0].Float(), Y: args[1].Float()}
	view.MouseRelease(pt, mods(args, 2))
	return nil
}

func wheel(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	view.Wheel(sheet.Point{X: args[0].Float(), Y: args[1].Float()}, args[2].Float())
	return nil
}

func resize(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	view.SetScreenSize(args[0].Int(), args[1].Int())
	return nil
}

func seek(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	view.SeekFrame(args[0].Float())
	return nil
}

func selectAll(this js.Value, args []js.Value) interface{} {
	view.SelectAll()
	return nil
}

func clearSelection(this js.Value, args []js.Value) interface{} {
	view.ClearSelection()
	return nil
}

func deleteSelectedKeys(this js.Value, args []js.Value) interface{} {
	view.DeleteSelectedKeyframes()
	return nil
}

func setInterpolation(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	view.SetSelectedKeysInterp(curve.InterpType(args[0].String()))
	return nil
}

func undo(this js.Value, args []js.Value) interface{} {
	if err := stack.Undo(); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	view.SyncAfterHistory()
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func redo(this js.Value, args []js.Value) interface{} {
	if err := stack.Redo(); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	view.SyncAfterHistory()
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func frameAll(this js.Value, args []js.Value) interface{} {
	view.Frame()
	return nil
}

func frameSelection(this js.Value, args []js.Value) interface{} {
	view.FrameSelection()
	return nil
}

func setNodeExpanded(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	id := curve.NodeID(args[0].String())
	layout.SetNodeExpanded(id, args[1].Truthy())
	view.OnRowExpansionChanged(id)
	return nil
}

func setParamExpanded(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	id := curve.ParamID(args[0].String())
	p, ok := model.Param(id)
	if !ok {
		return nil
	}
	layout.SetParamExpanded(id, args[1].Truthy())
	view.OnRowExpansionChanged(p.Node)
	return nil
}

func setPanelOpen(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	model.SetPanelOpen(curve.NodeID(args[0].String()), args[1].Truthy())
	return nil
}

func renderState(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(view.RenderState())
	if err != nil {
		return js.ValueOf("{}")
	}
	return js.ValueOf(string(data))
}

func getFrame(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(view.CurrentFrame())
}

func canUndo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(stack.CanUndo())
}

func canRedo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(stack.CanRedo())
}
