package main

import (
	"fmt"
	"net/http"

	"github.com/kilangpay/payslip-backend-go/internal/config"
	appHTTP "github.com/kilangpay/payslip-backend-go/internal/handler/http"
	"github.com/kilangpay/payslip-backend-go/internal/pkg/database"
	"github.com/kilangpay/payslip-backend-go/internal/pkg/jwt"
	"github.com/kilangpay/payslip-backend-go/internal/repository/postgresql"
	payslipService "github.com/kilangpay/payslip-backend-go/internal/service/payslip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	payslipRepo := postgresql.NewPayslipRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	payslipSvc := payslipService.NewPayslipService(payslipRepo, employeeRepo)

	payslipHandler := appHTTP.NewPayslipHandler(payslipSvc)

	router := appHTTP.NewRouter(JWTService, payslipHandler, cfg.App.AllowedOrigins)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
