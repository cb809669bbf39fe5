package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/peopledesk/hr-backend-go/internal/config"
	appHTTP "github.com/peopledesk/hr-backend-go/internal/handler/http"
	"github.com/peopledesk/hr-backend-go/internal/pkg/database"
	"github.com/peopledesk/hr-backend-go/internal/pkg/jwt"
	"github.com/peopledesk/hr-backend-go/internal/pkg/storage"
	"github.com/peopledesk/hr-backend-go/internal/repository/postgresql"
	attendanceService "github.com/peopledesk/hr-backend-go/internal/service/attendance"
	serviceAuth "github.com/peopledesk/hr-backend-go/internal/service/auth"
	employeeService "github.com/peopledesk/hr-backend-go/internal/service/employee"
	"github.com/peopledesk/hr-backend-go/internal/service/file"
	"github.com/peopledesk/hr-backend-go/internal/service/leave"
	"github.com/peopledesk/hr-backend-go/internal/service/master"
	transferService "github.com/peopledesk/hr-backend-go/internal/service/transfer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	branchRepo := postgresql.NewBranchRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveApplicationRepo := postgresql.NewLeaveApplicationRepository(db)
	leaveApprovalRepo := postgresql.NewLeaveApprovalRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	transferRepo := postgresql.NewTransferRepository(db)

	txManager := postgresql.NewTxManager(db)
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}
	fileService := file.NewFileService(fileStorage)

	authService := serviceAuth.NewAuthService(employeeRepo, jwtService)
	empService := employeeService.NewEmployeeService(employeeRepo, branchRepo)
	leaveService := leave.NewLeaveService(
		txManager, leaveTypeRepo, leaveBalanceRepo, leaveApplicationRepo, leaveApprovalRepo, employeeRepo)
	attService := attendanceService.NewAttendanceService(attendanceRepo)
	trfService := transferService.NewTransferService(txManager, transferRepo, employeeRepo, branchRepo)
	masterService := master.NewMasterService(branchRepo)

	router := appHTTP.NewRouter(
		jwtService,
		appHTTP.NewAuthHandler(authService),
		appHTTP.NewEmployeeHandler(empService),
		appHTTP.NewLeaveHandler(leaveService, fileService),
		appHTTP.NewAttendanceHandler(attService),
		appHTTP.NewTransferHandler(trfService),
		appHTTP.NewMasterHandler(masterService),
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Starting server on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error:", err)
	}
}
