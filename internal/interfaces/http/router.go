package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/carta-pro/internal/application/auth"
	"github.com/tu-usuario/carta-pro/internal/application/editor"
	"github.com/tu-usuario/carta-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.UseCase
	EditorUC  *editor.UseCase
	JWTSecret string
}

// Router registra las rutas de la API. Las mutaciones de cartas quedan
// restringidas a propietario y gerente; la lectura la tiene cualquier rol.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	canEdit := RequireRole(entity.RolePropietario, entity.RoleGerente)

	// Cartas (lista canónica + ciclo de vida)
	menus := protected.Group("/menus")
	menuHandler := NewMenuHandler(deps.EditorUC)
	menus.Get("/", menuHandler.List)
	menus.Post("/", canEdit, menuHandler.Create)
	menus.Delete("/:id", canEdit, menuHandler.Delete)

	// Sesión de edición (borrador)
	editorHandler := NewEditorHandler(deps.EditorUC)
	session := menus.Group("/:id/editor", canEdit)
	session.Post("/", editorHandler.Begin)
	session.Get("/", editorHandler.Draft)
	session.Delete("/", editorHandler.Close)
	session.Patch("/fields", editorHandler.UpdateField)
	session.Put("/focus", editorHandler.SetFocus)
	session.Post("/categories", editorHandler.AddCategory)
	session.Patch("/categories/:index", editorHandler.UpdateCategoryField)
	session.Delete("/categories/:index", editorHandler.RemoveCategory)
	session.Post("/categories/:index/options", editorHandler.AddOption)
	session.Patch("/categories/:index/options/:optidx", editorHandler.UpdateOptionField)
	session.Delete("/categories/:index/options/:optidx", editorHandler.RemoveOption)
	session.Post("/commit", editorHandler.Commit)
	session.Put("/image", editorHandler.AttachImage)
}
