package remuneration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hrms/internal/attendance"
	"hrms/internal/holiday"
	remunerationerrors "hrms/internal/remuneration/errors"
	"hrms/internal/user"

	"github.com/redis/go-redis/v9"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const summaryCacheTTL = 15 * time.Minute

func summaryCacheKey(month, year int) string {
	return fmt.Sprintf("remuneration:summary:%d:%02d", year, month)
}

//go:generate mockgen -source=remuneration_service.go -destination=mock/remuneration_service_mock.go -package=mock
type Service interface {
	GetMonthlySummary(ctx context.Context, month, year int) (MonthlySummary, error)
	ExportExcel(ctx context.Context, month, year int) (*bytes.Buffer, string, error)
}

type service struct {
	repo        Repository
	userRepo    user.Repository
	holidayRepo holiday.Repository
	rdb         *redis.Client
	sf          *singleflight.Group
	logger      *zap.Logger
}

func NewService(repo Repository, userRepo user.Repository, holidayRepo holiday.Repository, rdb *redis.Client) Service {
	return &service{
		repo:        repo,
		userRepo:    userRepo,
		holidayRepo: holidayRepo,
		rdb:         rdb,
		sf:          &singleflight.Group{},
		logger:      zap.L().Named("remuneration.service"),
	}
}

// GetMonthlySummary is cached per (month, year). The data is purely derived,
// so staleness is bounded by the TTL and no invalidation hooks are needed.
func (s *service) GetMonthlySummary(ctx context.Context, month, year int) (MonthlySummary, error) {
	if month < 1 || month > 12 {
		return MonthlySummary{}, remunerationerrors.ErrInvalidMonth
	}
	if year < 2000 || year > 2100 {
		return MonthlySummary{}, remunerationerrors.ErrInvalidYear
	}

	cacheKey := summaryCacheKey(month, year)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var summary MonthlySummary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return summary, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		summary, err := s.computeSummary(ctx, month, year)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(summary); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, summaryCacheTTL).Err(); err != nil {
					s.logger.Warn("summary cache write failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return summary, nil
	})
	if err != nil {
		return MonthlySummary{}, err
	}
	return v.(MonthlySummary), nil
}

func (s *service) computeSummary(ctx context.Context, month, year int) (MonthlySummary, error) {
	users, err := s.userRepo.FindAllActive(ctx)
	if err != nil {
		return MonthlySummary{}, err
	}

	counts, err := s.repo.StatusCountsByMonth(ctx, month, year)
	if err != nil {
		return MonthlySummary{}, err
	}

	holidays, err := s.holidayRepo.FindByYear(ctx, year)
	if err != nil {
		return MonthlySummary{}, err
	}

	totalDays := daysInMonth(month, year)
	weeklyOffs := weekendDays(month, year)
	holidayCount := workingDayHolidays(holidays, month)

	countsByUser := make(map[string]map[string]int)
	for _, c := range counts {
		if countsByUser[c.UserID] == nil {
			countsByUser[c.UserID] = make(map[string]int)
		}
		countsByUser[c.UserID][c.Status] = c.Count
	}

	rows := make([]EmployeeRemuneration, len(users))
	for i, u := range users {
		byStatus := countsByUser[u.ID.String()]

		worked := float64(byStatus[attendance.StatusPresent] + byStatus[attendance.StatusLate])
		casual := float64(byStatus[attendance.StatusOnLeave]) + 0.5*float64(byStatus[attendance.StatusHalfDay])
		absent := float64(byStatus[attendance.StatusAbsent])

		rows[i] = EmployeeRemuneration{
			UserID:          u.ID.String(),
			UserName:        u.FullName,
			EmployeeCode:    u.EmployeeCode,
			DaysWorked:      worked,
			CasualLeaveDays: casual,
			AbsentDays:      absent,
			WeeklyOffs:      weeklyOffs,
			Holidays:        holidayCount,
			TotalDays:       totalDays,
			PayableDays:     float64(totalDays) - absent,
		}
	}

	return MonthlySummary{Month: month, Year: year, Employees: rows}, nil
}

func (s *service) ExportExcel(ctx context.Context, month, year int) (*bytes.Buffer, string, error) {
	summary, err := s.GetMonthlySummary(ctx, month, year)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Remuneration"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", remunerationerrors.ErrExportFailed
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	headers := []string{
		"Employee Code", "Name", "Days Worked", "Casual Leave",
		"Absent", "Weekly Offs", "Holidays", "Total Days", "Payable Days",
	}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s1", col)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	f.SetColWidth(sheet, "A", "B", 20)

	for i, row := range summary.Employees {
		r := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.EmployeeCode)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.UserName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), row.DaysWorked)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.CasualLeaveDays)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", r), row.AbsentDays)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", r), row.WeeklyOffs)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", r), row.Holidays)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", r), row.TotalDays)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", r), row.PayableDays)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("excel export failed", zap.Error(err))
		return nil, "", remunerationerrors.ErrExportFailed
	}

	filename := fmt.Sprintf("remuneration_%d_%02d.xlsx", year, month)
	return buf, filename, nil
}

func daysInMonth(month, year int) int {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

func weekendDays(month, year int) int {
	count := 0
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	for d := first; d.Month() == time.Month(month); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			count++
		}
	}
	return count
}

// workingDayHolidays counts the month's holidays that do not fall on a
// weekend; those already count as weekly offs.
func workingDayHolidays(holidays []holiday.Holiday, month int) int {
	count := 0
	for _, h := range holidays {
		if int(h.HolidayDate.Month()) != month {
			continue
		}
		wd := h.HolidayDate.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}
