package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"time"

	"meatstore-backend/internal/config"
	"meatstore-backend/internal/metrics"
	"meatstore-backend/internal/timeutil"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jung-kurt/gofpdf/v2"
	"github.com/xuri/excelize/v2"
)

// Export formats accepted by the summary export endpoint.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// ExportService renders the summary table into downloadable files and
// optionally archives each export to object storage for the
// accountants' audit trail.
type ExportService struct {
	archive config.Config
}

func NewExportService(cfg *config.Config) *ExportService {
	return &ExportService{archive: *cfg}
}

// BuildCSV renders the table as CSV, header row first.
func (s *ExportService) BuildCSV(table [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	for _, row := range table {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	metrics.ExportsGenerated.WithLabelValues(FormatCSV).Inc()
	return buf.Bytes(), nil
}

// BuildXLSX renders the table as a single-sheet workbook with a bold
// header row.
func (s *ExportService) BuildXLSX(table [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Summary"
	f.SetSheetName("Sheet1", sheet)

	for i, row := range table {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if len(table) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err == nil {
			endCell, _ := excelize.CoordinatesToCellName(len(table[0]), 1)
			f.SetCellStyle(sheet, "A1", endCell, style)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	metrics.ExportsGenerated.WithLabelValues(FormatXLSX).Inc()
	return buf.Bytes(), nil
}

// BuildPDF renders the table as a landscape A4 report.
func (s *ExportService) BuildPDF(title string, table [][]string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "") // Landscape for nine columns
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(277, 10, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(277, 6, fmt.Sprintf("Generated: %s", timeutil.FormatIST(timeutil.Now(), timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Product column gets the leftover width.
	colWidths := []float64{57, 30, 25, 25, 30, 28, 28, 28, 26}

	for i, row := range table {
		if i == 0 {
			pdf.SetFont("Arial", "B", 9)
			pdf.SetFillColor(200, 200, 200)
		} else if i == len(table)-1 {
			pdf.SetFont("Arial", "B", 9)
			pdf.SetFillColor(240, 240, 240)
		} else {
			pdf.SetFont("Arial", "", 9)
			pdf.SetFillColor(255, 255, 255)
		}

		fill := i == 0 || i == len(table)-1
		for j, cell := range row {
			width := float64(28)
			if j < len(colWidths) {
				width = colWidths[j]
			}
			align := "R"
			if j <= 1 {
				align = "L"
			}
			if len(cell) > 32 {
				cell = cell[:29] + "..."
			}
			last := 0
			if j == len(row)-1 {
				last = 1
			}
			pdf.CellFormat(width, 7, cell, "1", last, align, fill, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	metrics.ExportsGenerated.WithLabelValues(FormatPDF).Inc()
	return buf.Bytes(), nil
}

// Archive uploads an export to object storage when configured. Upload
// failures only log; the download the operator asked for already
// succeeded.
func (s *ExportService) Archive(ctx context.Context, filename string, data []byte, contentType string) {
	if !s.archive.Archive.Enabled {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.archive.Archive.AccessKey,
			s.archive.Archive.SecretKey,
			"",
		)),
		awsconfig.WithRegion(s.archive.Archive.Region),
	)
	if err != nil {
		log.Printf("[Export] Failed to configure archive client: %v", err)
		return
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.archive.Archive.Endpoint)
	})

	key := fmt.Sprintf("exports/%s/%s", time.Now().Format("2006-01"), filename)
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.archive.Archive.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("[Export] Failed to archive %s: %v", key, err)
		return
	}

	log.Printf("[Export] Archived %s (%d bytes)", key, len(data))
}
