package controller

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-storage-gateway/gateway"
	"github.com/tnqbao/gau-storage-gateway/http/controller/dto"
	"github.com/tnqbao/gau-storage-gateway/utils"
)

// pathParams pulls the bucket and object names out of the route. The wildcard
// segment keeps its leading slash in gin, so it is trimmed here.
func pathParams(c *gin.Context) (string, string) {
	bucketName := c.Param("bucket_name")
	objectName := strings.TrimPrefix(c.Param("object_name"), "/")
	return bucketName, objectName
}

// requestBody picks the upload stream for a create or replace. Multipart form
// uploads carry the bytes in the "file" field; anything else streams the raw
// request body with the declared content length.
func requestBody(c *gin.Context) (io.ReadCloser, int64, string, error) {
	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return nil, 0, "", err
		}
		file, err := fileHeader.Open()
		if err != nil {
			return nil, 0, "", err
		}
		fileType := fileHeader.Header.Get("Content-Type")
		if fileType == "" {
			fileType = "application/octet-stream"
		}
		return file, fileHeader.Size, fileType, nil
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	// ContentLength is -1 when unknown; the blob store streams in that case.
	return c.Request.Body, c.Request.ContentLength, contentType, nil
}

func (ctrl *Controller) GetObject(c *gin.Context) {
	ctx := c.Request.Context()
	bucketName, objectName := pathParams(c)
	if bucketName == "" || objectName == "" {
		utils.JSON400(c, "bucket and object names are required")
		return
	}

	result, err := ctrl.Gateway.Get(ctx, c.GetString("credential"), bucketName, objectName)
	if err != nil {
		ctrl.renderError(c, ctx, err)
		return
	}
	defer result.Body.Close()

	c.DataFromReader(result.Status, result.Size, result.ContentType, result.Body, nil)
}

func (ctrl *Controller) CreateObject(c *gin.Context) {
	ctx := c.Request.Context()
	bucketName, objectName := pathParams(c)
	if bucketName == "" || objectName == "" {
		utils.JSON400(c, "bucket and object names are required")
		return
	}

	body, size, contentType, err := requestBody(c)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Object] Failed to read upload body: %v", err)
		utils.JSON400(c, "invalid upload body")
		return
	}
	defer body.Close()

	result, err := ctrl.Gateway.Create(ctx, c.GetString("credential"), bucketName, objectName, body, size, contentType)
	if err != nil {
		ctrl.renderError(c, ctx, err)
		return
	}

	c.JSON(result.Status, dto.ObjectKeyResponse{Key: result.Key})
}

func (ctrl *Controller) ReplaceObject(c *gin.Context) {
	ctx := c.Request.Context()
	bucketName, objectName := pathParams(c)
	if bucketName == "" || objectName == "" {
		utils.JSON400(c, "bucket and object names are required")
		return
	}

	body, size, contentType, err := requestBody(c)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Object] Failed to read upload body: %v", err)
		utils.JSON400(c, "invalid upload body")
		return
	}
	defer body.Close()

	result, err := ctrl.Gateway.Replace(ctx, c.GetString("credential"), bucketName, objectName, body, size, contentType)
	if err != nil {
		ctrl.renderError(c, ctx, err)
		return
	}

	c.JSON(result.Status, dto.ObjectKeyResponse{Key: result.Key})
}

func (ctrl *Controller) DeleteObject(c *gin.Context) {
	ctx := c.Request.Context()
	bucketName, objectName := pathParams(c)
	if bucketName == "" || objectName == "" {
		utils.JSON400(c, "bucket and object names are required")
		return
	}

	if err := ctrl.Gateway.Delete(ctx, c.GetString("credential"), bucketName, objectName); err != nil {
		ctrl.renderError(c, ctx, err)
		return
	}

	c.String(200, "Deleted")
}

// renderError folds gateway verdicts onto the wire. Authentication failures,
// denials and duplicate creates all answer 403 so callers cannot probe for
// existence; a store disagreement is a 500, never a 404.
func (ctrl *Controller) renderError(c *gin.Context, ctx context.Context, err error) {
	switch {
	case errors.Is(err, gateway.ErrUnauthenticated),
		errors.Is(err, gateway.ErrForbidden),
		errors.Is(err, gateway.ErrConflict):
		utils.JSON403(c, "Forbidden")
	case errors.Is(err, gateway.ErrNotFound):
		utils.JSON404(c, "Not found")
	case errors.Is(err, gateway.ErrInconsistent):
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Object] Store disagreement: %v", err)
		utils.JSON500(c, "Internal server error")
	default:
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Object] Request failed: %v", err)
		utils.JSON500(c, "Internal server error")
	}
}
