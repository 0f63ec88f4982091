package server

import (
	"itinfo/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetHome handles GET /api/home
func (s *Server) GetHome(c *fiber.Ctx) error {
	return c.JSON(s.homeService.Feed(c.UserContext()))
}

// GetNotices handles GET /api/notices?limit=
func (s *Server) GetNotices(c *fiber.Ctx) error {
	notices, err := s.postService.ListNotices(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(notices)
}

// GetNotice handles GET /api/notices/:id
func (s *Server) GetNotice(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	notice, err := s.postService.GetNotice(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(notice)
}

// GetPosts handles GET /api/posts?board=&q=
func (s *Server) GetPosts(c *fiber.Ctx) error {
	search := c.Query("q")
	if search == "" {
		search = c.Query("search")
	}
	posts, err := s.postService.ListCommunity(c.UserContext(), service.ListCommunityInput{
		Board:  c.Query("board"),
		Search: search,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetPopularPosts handles GET /api/posts/popular
func (s *Server) GetPopularPosts(c *fiber.Ctx) error {
	posts, err := s.postService.Popular(c.UserContext(), c.QueryInt("limit", service.PopularPostsLimit))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title     string `json:"title"`
		Content   string `json:"content"`
		BoardType string `json:"board_type"`
		ImageURL  string `json:"image_url,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:    currentUserID(c),
		Title:     req.Title,
		Content:   req.Content,
		BoardType: req.BoardType,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// TogglePostLike handles POST /api/posts/:id/like
func (s *Server) TogglePostLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	post, liked, err := s.postService.ToggleLike(c.UserContext(), service.ToggleLikeInput{
		Viewer: viewerSession(c),
		ID:     id,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"post": post, "liked": liked})
}

// GetComments handles GET /api/posts/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	groups, err := s.commentService.ListThread(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(groups)
}

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content         string `json:"content"`
		ParentCommentID *uint  `json:"parent_comment_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		UserID:          currentUserID(c),
		PostID:          postID,
		ParentCommentID: req.ParentCommentID,
		Content:         req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}
