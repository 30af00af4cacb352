package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/itsakphyo/myanlang-translation-platform/internal/model"
	"github.com/itsakphyo/myanlang-translation-platform/internal/repository"
	"gorm.io/gorm"
)

// LanguageController 语言目录控制器
type LanguageController struct {
	languageRepo repository.LanguageRepository
}

// NewLanguageController 创建语言目录控制器
func NewLanguageController(languageRepo repository.LanguageRepository) *LanguageController {
	return &LanguageController{
		languageRepo: languageRepo,
	}
}

// List 列出所有语言
func (c *LanguageController) List(ctx *gin.Context) {
	languages, err := c.languageRepo.FindAll()
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to list languages", err.Error())
		return
	}

	Success(ctx, languages)
}

// Create 新增语言
func (c *LanguageController) Create(ctx *gin.Context) {
	var req struct {
		LanguageName string `json:"language_name" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	language := &model.Language{LanguageName: req.LanguageName}
	if err := c.languageRepo.Save(language); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Error(ctx, http.StatusConflict, "language already exists", err.Error())
			return
		}
		Error(ctx, http.StatusInternalServerError, "failed to create language", err.Error())
		return
	}

	Success(ctx, language)
}
