package handler

import (
	"go-inventory-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// callerID is the acting user's id, or "system" when unauthenticated.
func callerID(c *fiber.Ctx) string {
	if id := actorFrom(c).ID; id != "" {
		return id
	}
	return "system"
}

// CreateUser handles user creation
// POST /api/v1/users
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	user, err := h.userService.CreateUser(&req, callerID(c))
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, fiber.StatusCreated, "User created successfully", "data", user.ToResponse())
}

// UpdateUserPrivileges handles privilege assignment
// PUT /api/v1/users/:id/privileges
func (h *UserHandler) UpdateUserPrivileges(c *fiber.Ctx) error {
	userID, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	var req struct {
		Privileges []string `json:"privileges"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	user, err := h.userService.UpdateUserPrivileges(userID, req.Privileges, callerID(c))
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, fiber.StatusOK, "Privileges updated successfully", "data", user.ToResponse())
}

// GetUsers returns all users
// GET /api/v1/users
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Users fetched", "data", users)
}

// GetUser returns a single user by ID
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	userID, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, fiber.StatusOK, "User fetched", "data", user)
}

// UpdateUser handles user update
// PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	userID, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	var req service.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	user, err := h.userService.UpdateUser(userID, &req, callerID(c))
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, fiber.StatusOK, "User updated successfully", "data", user.ToResponse())
}

// DeleteUser handles user deletion
// DELETE /api/v1/users/:id
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	if err := h.userService.DeleteUser(userID); err != nil {
		return respondError(c, err)
	}

	return respond(c, fiber.StatusOK, "User deleted successfully", "", nil)
}
