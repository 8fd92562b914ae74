package httpapi

import (
	"errors"
	"net/http"

	"github.com/avdeevs/taskkeeper/internal/common"
	"github.com/avdeevs/taskkeeper/internal/server/models"
	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type taskRequest struct {
	Title string `json:"title"`
}

func (s *Server) handleRegister(c *gin.Context) {
	ctx := c.Request.Context()

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
		return
	}

	s.logger.Info(ctx, "Registration request", "username", req.Username)

	res, err := s.users.Register(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
		case errors.Is(err, common.ErrorAlreadyExists):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists"})
		default:
			s.logger.Error(ctx, "registration failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed"})
		}
		return
	}

	s.logger.Info(ctx, "Registered", "username", req.Username)

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   res.Token,
		"user_id": res.UserID,
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	ctx := c.Request.Context()

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
		return
	}

	res, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
		case errors.Is(err, common.ErrorUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
		default:
			s.logger.Error(ctx, "login failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   res.Token,
		"user_id": res.UserID,
	})
}

func (s *Server) handleListTasks(c *gin.Context) {
	ctx := c.Request.Context()

	tasks, err := s.tasks.List(ctx)
	if err != nil {
		s.logger.Error(ctx, "listing tasks failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not list tasks"})
		return
	}

	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	ctx := c.Request.Context()

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title is required"})
		return
	}

	task, err := s.tasks.Create(ctx, req.Title)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Title is required"})
			return
		}
		s.logger.Error(ctx, "creating task failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": gin.H{"title": task.Title}})
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	ctx := c.Request.Context()

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title is required"})
		return
	}

	task, err := s.tasks.UpdateTitle(ctx, c.Param("id"), req.Title)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid task id"})
		case errors.Is(err, common.ErrorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		default:
			s.logger.Error(ctx, "updating task failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update task"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": gin.H{"title": task.Title}})
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	ctx := c.Request.Context()

	err := s.tasks.Delete(ctx, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid task id"})
		case errors.Is(err, common.ErrorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"result": gin.H{"message": "no record found"}})
		default:
			s.logger.Error(ctx, "deleting task failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete task"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": gin.H{"message": "record deleted"}})
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx := c.Request.Context()

	database := "ok"
	if s.health.PingDatabase != nil {
		if err := s.health.PingDatabase(ctx); err != nil {
			database = "unreachable"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           "ok",
		"vault":            s.health.CredentialSource,
		"database":         database,
		"mongodb_host":     s.health.MongoHost,
		"mongodb_database": s.health.MongoDatabase,
		"security":         "enabled",
	})
}
