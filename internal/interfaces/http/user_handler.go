package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/multitenant-inventory/internal/application/dto"
	"github.com/jhoicas/multitenant-inventory/internal/application/usecase"
	"github.com/jhoicas/multitenant-inventory/internal/domain/authz"
	"github.com/jhoicas/multitenant-inventory/pkg/logger"
)

// UserHandler maneja las peticiones HTTP para User.
// Las operaciones sobre un usuario concreto repiten la verificación OwnerOrAdmin con el objeto cargado.
type UserHandler struct {
	uc    *usecase.UserUseCase
	guard *Guard
	log   *logger.Logger
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, guard *Guard, log *logger.Logger) *UserHandler {
	return &UserHandler{uc: uc, guard: guard, log: log}
}

// Create godoc
// @Summary      Crear usuario (solo ADMIN)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar usuarios (solo ADMIN)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (máx. 100)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.UserListResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), parsePage(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener usuario (propio o ADMIN)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, ok, err := h.loadOwned(c, authz.ActionRetrieve)
	if !ok {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar usuario (propio o ADMIN)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Datos completos"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	target, ok, err := h.loadOwned(c, authz.ActionUpdate)
	if !ok {
		return err
	}
	var in dto.UpdateUserRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetPrincipal(c), target.ID, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Patch godoc
// @Summary      Actualizar parcialmente un usuario (propio o ADMIN)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "ID del usuario"
// @Param        body  body  dto.PatchUserRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [patch]
func (h *UserHandler) Patch(c *fiber.Ctx) error {
	target, ok, err := h.loadOwned(c, authz.ActionPartialUpdate)
	if !ok {
		return err
	}
	var in dto.PatchUserRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Patch(c.UserContext(), GetPrincipal(c), target.ID, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar usuario (propio o ADMIN)
// @Tags         users
// @Security     Bearer
// @Param        id  path  int  true  "ID del usuario"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	target, ok, err := h.loadOwned(c, authz.ActionDelete)
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), target.ID); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// loadOwned carga el usuario de :id y evalúa la regla de objeto. Con ok=false la respuesta ya está escrita.
func (h *UserHandler) loadOwned(c *fiber.Ctx, action authz.Action) (*dto.UserResponse, bool, error) {
	id, err := parseID(c)
	if err != nil {
		return nil, false, respondError(c, h.log, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return nil, false, respondError(c, h.log, err)
	}
	if ok, err := h.guard.allow(c, authz.ResourceUser, action, authz.UserTarget{UserID: out.ID}); !ok {
		return nil, false, err
	}
	return out, true, nil
}
