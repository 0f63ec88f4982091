package server

import (
	"itinfo/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProducts handles GET /api/products?category=&sub_category=&search=&sort=
func (s *Server) GetProducts(c *fiber.Ctx) error {
	search := c.Query("search")
	if search == "" {
		search = c.Query("q")
	}
	products, err := s.productService.List(c.UserContext(), service.ListProductsInput{
		Category:    c.Query("category"),
		SubCategory: c.Query("sub_category"),
		Search:      search,
		Sort:        c.Query("sort"),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(products)
}

// GetProduct handles GET /api/products/:id
func (s *Server) GetProduct(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	detail, err := s.productService.Get(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(detail)
}

// CreateReview handles POST /api/products/:id/reviews
func (s *Server) CreateReview(c *fiber.Ctx) error {
	productID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.CreateReviewInput
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	req.UserID = currentUserID(c)
	req.ProductID = productID

	review, err := s.productService.CreateReview(c.UserContext(), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// ToggleReviewLike handles POST /api/reviews/:id/like
func (s *Server) ToggleReviewLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	review, liked, err := s.productService.ToggleReviewLike(c.UserContext(), service.ToggleLikeInput{
		Viewer: viewerSession(c),
		ID:     id,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"review": review, "liked": liked})
}

// GetLatestReviews handles GET /api/reviews/latest
func (s *Server) GetLatestReviews(c *fiber.Ctx) error {
	reviews, err := s.productService.LatestReviews(c.UserContext(), c.QueryInt("limit", service.LatestReviewsLimit))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(reviews)
}
