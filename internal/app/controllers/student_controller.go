package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/studentreg/internal/app/models/dto"
	"github.com/yigit/studentreg/internal/app/services"
	"github.com/yigit/studentreg/internal/middleware"
)

// StudentController handles student-related operations
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// CreateStudent registers a student
// @Summary Register a student
// @Description Validates the submitted student and stores it. Identity and timestamps are assigned by the server.
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student created"
// @Failure 400 {object} dto.APIResponse "Validation failed or malformed body"
// @Failure 500 {object} dto.APIResponse "Database unavailable"
// @Router /createStudent [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student, err := c.studentService.CreateStudent(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	middleware.RespondOK(ctx, student)
}

// GetAllStudents lists registered students
// @Summary List students
// @Description Returns every student, newest registration first. An optional page/pageSize body pages the list.
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.ListStudentsRequest false "Paging"
// @Success 200 {object} dto.APIResponse{data=[]models.Student} "Students"
// @Failure 500 {object} dto.APIResponse "Database unavailable"
// @Router /getAllStudents [post]
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	var req dto.ListStudentsRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	students, err := c.studentService.GetAllStudents(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	middleware.RespondOK(ctx, students)
}
