package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"vtufest/backend/internal/catalog"
	"vtufest/backend/internal/model"
	"vtufest/backend/internal/repository"
)

// ErrExportGenerateFail 生成工作簿失败
var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

const summarySheet = "Summary"

// ExportService 名单导出
//
// 输出格式：
//   - Sheet "Summary"：每个赛项的参赛者/随队人员人数
//   - 每个有名单的赛项一个 Sheet（名称取名单表名去掉 event_ 前缀，不超过 31 字符）
type ExportService interface {
	// ExportAssignments 导出本学院全部赛项名单，返回内容与建议文件名
	ExportAssignments(ctx context.Context, collegeID int64) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo    *repository.Repository
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, cat *catalog.Catalog, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, catalog: cat, logger: logger}
}

func (s *exportService) ExportAssignments(ctx context.Context, collegeID int64) (*bytes.Buffer, string, error) {
	college, err := s.repo.College.GetByID(ctx, collegeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, "", ErrCollegeNotFound
		}
		s.logger.Error("查询学院失败", zap.Int64("college_id", collegeID), zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	// 默认 Sheet1 改名为 Summary
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(summarySheet, "A1", fmt.Sprintf("%s (%s)", college.CollegeName, college.CollegeCode))
	f.MergeCell(summarySheet, "A1", "D1")
	f.SetCellStyle(summarySheet, "A1", "A1", headerStyle)
	f.SetSheetRow(summarySheet, "A2", &[]interface{}{"Event", "Category", "Participants", "Accompanists"})
	f.SetCellStyle(summarySheet, "A2", "D2", headerStyle)
	f.SetColWidth(summarySheet, "A", "A", 44)
	f.SetColWidth(summarySheet, "B", "D", 14)

	summaryRow := 3
	for _, ev := range s.catalog.Events() {
		entries, err := s.repo.Roster.ListByCollege(ctx, ev.Table, collegeID)
		if err != nil {
			s.logger.Error("查询赛项名单失败", zap.String("event", ev.Slug), zap.Error(err))
			return nil, "", err
		}

		var participants, accompanists int
		for _, e := range entries {
			if e.Role == model.RosterParticipant {
				participants++
			} else {
				accompanists++
			}
		}
		f.SetSheetRow(summarySheet, cell("A", summaryRow),
			&[]interface{}{ev.Name, string(ev.Category), participants, accompanists})
		summaryRow++

		if len(entries) == 0 {
			continue
		}
		if err := writeRosterSheet(f, sheetNameFor(ev), ev.Name, entries, headerStyle); err != nil {
			s.logger.Error("写入赛项 Sheet 失败", zap.String("event", ev.Slug), zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("assignments_%s.xlsx", college.CollegeCode)
	return buf, filename, nil
}

func writeRosterSheet(f *excelize.File, sheet, title string, entries []model.RosterEntry, headerStyle int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", title)
	f.MergeCell(sheet, "A1", "F1")
	f.SetCellStyle(sheet, "A1", "A1", headerStyle)
	f.SetSheetRow(sheet, "A2", &[]interface{}{"#", "Name", "Type", "Role", "Phone", "Email"})
	f.SetCellStyle(sheet, "A2", "F2", headerStyle)
	f.SetColWidth(sheet, "A", "A", 6)
	f.SetColWidth(sheet, "B", "B", 28)
	f.SetColWidth(sheet, "C", "D", 14)
	f.SetColWidth(sheet, "E", "F", 26)

	for i, e := range entries {
		row := i + 3
		if err := f.SetSheetRow(sheet, cell("A", row), &[]interface{}{
			i + 1, e.FullName, e.PersonType, e.Role, e.Phone, e.Email,
		}); err != nil {
			return err
		}
	}
	return nil
}

func sheetNameFor(ev catalog.Event) string {
	name := strings.TrimPrefix(ev.Table, "event_")
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
