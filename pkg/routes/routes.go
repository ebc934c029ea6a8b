package routes

import (
	"context"
	"net/http"

	"CollegeHub/internal/alumni"
	"CollegeHub/internal/apperr"
	"CollegeHub/internal/auth"
	"CollegeHub/internal/config"
	"CollegeHub/internal/contact"
	"CollegeHub/internal/course"
	"CollegeHub/internal/department"
	"CollegeHub/internal/event"
	"CollegeHub/internal/notice"
	"CollegeHub/internal/profile"
	"CollegeHub/internal/result"
	"CollegeHub/pkg/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var EchoModules = fx.Module("echo",
	fx.Provide(
		config.NewLogger,
		config.NewServerConfig,
		config.NewMongoDBConfig,
		config.NewMongoDBClient,
		config.NewMailerConfig,
		config.NewOtpMailer,
		config.NewRequestValidator,
		NewEchoServer,

		auth.NewTokenConfig,
		auth.NewTokenManager,
		auth.NewAccessPolicy,
		auth.NewUserRepository,
		auth.NewOtpRepository,
		auth.NewOtpService,
		auth.NewService,
		auth.NewHandler,
		middleware.NewAuthenticator,

		notice.NewRepository,
		notice.NewService,
		notice.NewHandler,
		department.NewRepository,
		department.NewHandler,
		course.NewRepository,
		course.NewHandler,
		event.NewRepository,
		event.NewHandler,
		result.NewRepository,
		result.NewHandler,
		profile.NewStudentRepository,
		profile.NewFacultyRepository,
		profile.NewService,
		profile.NewHandler,
		alumni.NewRepository,
		alumni.NewService,
		alumni.NewHandler,
		contact.NewRepository,
		contact.NewHandler,

		func(r *auth.UserRepository) auth.UserStore { return r },
		func(r *auth.OtpRepository) auth.OtpStore { return r },
		func(m *config.OtpMailer) auth.OtpNotifier { return m },
		func(r *auth.UserRepository) profile.UserDirectory { return r },
	),
	fx.Invoke(config.EnsureIndexes),
	fx.Invoke(RegisterRoutes),
)

func NewEchoServer(lc fx.Lifecycle, cfg *config.ServerConfig, validator *config.RequestValidator, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validator
	e.HTTPErrorHandler = apperr.NewHTTPErrorHandler(logger)

	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.Info("request", fields...)
			return nil
		},
	}))

	addr := ":" + cfg.Port
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("server starting", zap.String("addr", addr))
			go func() {
				if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
					logger.Fatal("server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("server shutting down")
			return e.Shutdown(ctx)
		},
	})
	return e
}

type Handlers struct {
	fx.In

	Server        *config.ServerConfig
	Authenticator *middleware.Authenticator
	Auth          *auth.Handler
	Notices       *notice.Handler
	Departments   *department.Handler
	Courses       *course.Handler
	Events        *event.Handler
	Results       *result.Handler
	Profiles      *profile.Handler
	Alumni        *alumni.Handler
	Contact       *contact.Handler
}

func RegisterRoutes(e *echo.Echo, h Handlers) {
	api := e.Group("/api")
	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]bool{"ok": true})
	})

	teacherOrAdmin := []echo.MiddlewareFunc{
		h.Authenticator.Authenticate,
		middleware.RequireRoles(auth.RoleTeacher, auth.RoleAdmin),
	}
	adminOnly := []echo.MiddlewareFunc{
		h.Authenticator.Authenticate,
		middleware.RequireRoles(auth.RoleAdmin),
	}

	authGroup := api.Group("/auth", middleware.AuthRateLimiter())
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/verify-register", h.Auth.VerifyRegister)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/verify-login", h.Auth.VerifyLogin)
	authGroup.POST("/request-password-reset", h.Auth.RequestPasswordReset)
	authGroup.POST("/verify-password-reset", h.Auth.VerifyPasswordReset)
	authGroup.POST("/resend-otp", h.Auth.ResendOtp)
	authGroup.GET("/me", h.Auth.Me, h.Authenticator.Authenticate)
	if !h.Server.Production {
		authGroup.GET("/debug/status", h.Auth.DebugStatus)
	}

	notices := api.Group("/notices")
	notices.GET("", h.Notices.List)
	notices.POST("", h.Notices.Create, teacherOrAdmin...)
	notices.PUT("/:id", h.Notices.Update, teacherOrAdmin...)
	notices.DELETE("/:id", h.Notices.Delete, teacherOrAdmin...)

	departments := api.Group("/departments")
	departments.GET("", h.Departments.List)
	departments.POST("", h.Departments.Create, adminOnly...)
	departments.PUT("/:id", h.Departments.Update, adminOnly...)
	departments.DELETE("/:id", h.Departments.Delete, adminOnly...)

	courses := api.Group("/courses")
	courses.GET("", h.Courses.List)
	courses.POST("", h.Courses.Create, teacherOrAdmin...)
	courses.PUT("/:id", h.Courses.Update, teacherOrAdmin...)
	courses.DELETE("/:id", h.Courses.Delete, teacherOrAdmin...)

	events := api.Group("/events")
	events.GET("", h.Events.List)
	events.POST("", h.Events.Create, teacherOrAdmin...)

	results := api.Group("/results")
	results.GET("", h.Results.List)
	results.GET("/student/:studentId", h.Results.StudentResults)
	results.POST("", h.Results.Create, teacherOrAdmin...)
	results.PUT("/:id", h.Results.Update, teacherOrAdmin...)
	results.DELETE("/:id", h.Results.Delete, teacherOrAdmin...)

	students := api.Group("/students")
	students.GET("", h.Profiles.ListStudents)
	students.GET("/:id", h.Profiles.StudentDetail)
	students.POST("", h.Profiles.CreateStudent, adminOnly...)
	students.PUT("/:id", h.Profiles.UpdateStudent, adminOnly...)
	students.DELETE("/:id", h.Profiles.DeleteStudent, adminOnly...)

	faculty := api.Group("/faculty")
	faculty.GET("", h.Profiles.ListFaculty)
	faculty.POST("", h.Profiles.CreateFaculty, adminOnly...)
	faculty.PUT("/:id", h.Profiles.UpdateFaculty, adminOnly...)
	faculty.DELETE("/:id", h.Profiles.DeleteFaculty, adminOnly...)

	alumniGroup := api.Group("/alumni")
	alumniGroup.GET("", h.Alumni.List)
	alumniGroup.GET("/search", h.Alumni.Search)
	alumniGroup.GET("/stats", h.Alumni.Stats)
	alumniGroup.GET("/:id", h.Alumni.Detail)
	alumniGroup.POST("", h.Alumni.Create,
		h.Authenticator.Authenticate, middleware.RequireRoles(auth.RoleAlumni))
	alumniGroup.PUT("/:id", h.Alumni.Update, h.Authenticator.Authenticate)
	alumniGroup.DELETE("/:id", h.Alumni.Delete, h.Authenticator.Authenticate)

	api.POST("/contact", h.Contact.Submit)
}
