package server

import (
	"io"

	"itinfo/internal/models"
	"itinfo/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminListPosts handles GET /api/admin/posts
func (s *Server) AdminListPosts(c *fiber.Ctx) error {
	posts, err := s.adminService.ListPosts(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// AdminCreateNotice handles POST /api/admin/notices
func (s *Server) AdminCreateNotice(c *fiber.Ctx) error {
	var req service.CreateNoticeInput
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	req.UserID = currentUserID(c)

	notice, err := s.adminService.CreateNotice(c.UserContext(), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(notice)
}

// AdminDeletePost handles DELETE /api/admin/posts/:id
func (s *Server) AdminDeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.adminService.DeletePost(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdminListProducts handles GET /api/admin/products
func (s *Server) AdminListProducts(c *fiber.Ctx) error {
	products, err := s.adminService.ListProducts(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(products)
}

// AdminCreateProduct handles POST /api/admin/products
func (s *Server) AdminCreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductInput
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	product, err := s.adminService.CreateProduct(c.UserContext(), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// AdminDeleteProduct handles DELETE /api/admin/products/:id
func (s *Server) AdminDeleteProduct(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.adminService.DeleteProduct(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdminUploadImage handles POST /api/admin/uploads (multipart field "image")
func (s *Server) AdminUploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("No file uploaded"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Unable to read uploaded file"))
	}

	obj, err := s.adminService.UploadImage(c.UserContext(), service.UploadImageInput{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(obj)
}
