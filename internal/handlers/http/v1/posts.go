package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gfdmit/web-forum/post-api/internal/model"
	"github.com/gfdmit/web-forum/post-api/internal/service"
)

const (
	totalPagesHeader   = "X-Total-Pages"
	totalCountHeader   = "X-Total-Count"
	rowsAffectedHeader = "X-Rows-Affected"
)

type postHandler struct {
	svc *service.Service
}

// list handles GET /api/posts?page=&page_size=. The body is the bare array
// of posts; totals travel in headers.
func (h *postHandler) list(c *gin.Context) {
	page, err := queryInt(c, "page", service.DefaultPage)
	if err != nil {
		respondError(c, err)
		return
	}
	pageSize, err := queryInt(c, "page_size", service.DefaultPageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.svc.ListPosts(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header(totalPagesHeader, strconv.FormatInt(result.TotalPages, 10))
	c.Header(totalCountHeader, strconv.FormatInt(result.TotalCount, 10))
	if link := pageLinks(c.Request.URL, page, pageSize, result.TotalPages); link != "" {
		c.Header("Link", link)
	}
	c.JSON(http.StatusOK, result.Posts)
}

func (h *postHandler) create(c *gin.Context) {
	var body model.Post
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, badRequest(err))
		return
	}

	post, err := h.svc.CreatePost(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *postHandler) get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	post, err := h.svc.GetPost(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *postHandler) update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var body model.Post
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, badRequest(err))
		return
	}

	post, err := h.svc.UpdatePost(c.Request.Context(), id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *postHandler) delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	rows, err := h.svc.DeletePost(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header(rowsAffectedHeader, strconv.FormatInt(rows, 10))
	c.Status(http.StatusOK)
}

func pathID(c *gin.Context) (int, error) {
	// ids are int4 in the posts table
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return 0, badRequest(fmt.Errorf("invalid post id %q", c.Param("id")))
	}
	return int(id), nil
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest(fmt.Errorf("%s must be an integer", name))
	}
	return v, nil
}
