package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

func SetupInputHandlers(app *App) {
	app.inputManager.SetCallbacks(app.window)

	// Framebuffer size callback
	app.window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		app.session.Resize()
	})

	app.window.SetRefreshCallback(func(w *glfw.Window) {
		app.RefreshRender()
	})
}
