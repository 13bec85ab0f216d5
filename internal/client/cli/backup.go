package cli

import (
	"bytes"
	"context"
	"os"
	"path"
	"strings"

	"github.com/dmitrijs2005/gophledger/internal/client/export"
	"github.com/dmitrijs2005/gophledger/internal/client/models"
	"github.com/dmitrijs2005/gophledger/internal/client/stats"
	"github.com/dmitrijs2005/gophledger/internal/filex"
	"github.com/dmitrijs2005/gophledger/internal/netx"
)

// Test seams for the presigned URL transfers and file reads.
var (
	upload   = netx.Upload
	download = netx.Download
	readFile = os.ReadFile
)

const (
	exportUsage = "Usage: export json | export xlsx [YYYY-MM]"
	backupUsage = "Usage: backup upload [ledger|memo] | backup download <key>"
)

func (a *App) writeExport(name string, data []byte) error {
	p, err := filex.WriteFile(a.config.ExportDir, name, data)
	if err != nil {
		a.log.Error(context.Background(), "export write failed", "error", err)
		a.println("파일을 저장하지 못했습니다.")
		return err
	}
	a.printf("저장됨: %s\n", p)
	return nil
}

// Export writes the ledger as a JSON backup or an xlsx sheet into the
// export directory.
func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println(exportUsage)
		return nil
	}
	if !a.ready(ctx) {
		return nil
	}

	switch args[0] {
	case "json":
		r := a.ledger.Export()
		if !report(a, r, "") {
			return r.Err()
		}
		return a.writeExport(export.BackupFilename(export.DomainLedger, now()), r.Value())

	case "xlsx":
		f := stats.All()
		if len(args) > 1 {
			if _, err := stats.DaysIn(args[1]); err != nil {
				a.println(exportUsage)
				return nil
			}
			f = stats.Month(args[1])
		}
		var rows []models.Entry
		for _, e := range a.ledger.Items() {
			if f(e.Date) {
				rows = append(rows, e)
			}
		}
		var buf bytes.Buffer
		if err := export.WriteXLSX(&buf, rows); err != nil {
			a.log.Error(ctx, "xlsx export failed", "error", err)
			a.println("엑셀 파일을 만들지 못했습니다.")
			return err
		}
		return a.writeExport(export.XLSXFilename(now()), buf.Bytes())
	}

	a.println(exportUsage)
	return nil
}

func (a *App) importLedger(ctx context.Context, data []byte) error {
	r := a.ledger.Import(ctx, data)
	if report(a, r, "") {
		rep := r.Value()
		a.printf("%d건 가져옴, %d건 건너뜀\n", rep.Imported, rep.Skipped)
	}
	return r.Err()
}

func (a *App) importMemos(ctx context.Context, data []byte) error {
	r := a.memos.Import(ctx, data)
	if report(a, r, "") {
		a.printf("메모 %d개를 가져왔습니다.\n", r.Value())
	}
	return r.Err()
}

// Import reads a ledger JSON backup from disk.
func (a *App) Import(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: import <file>")
		return nil
	}
	if !a.ready(ctx) {
		return nil
	}
	data, err := readFile(args[0])
	if err != nil {
		a.println("파일을 읽을 수 없습니다.")
		return err
	}
	return a.importLedger(ctx, data)
}

// Backup moves a JSON snapshot to or from object storage through presigned
// URLs handed out by the backend.
func (a *App) Backup(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println(backupUsage)
		return nil
	}
	if !a.requireLogin() {
		return nil
	}
	owner := a.creds.Current().ID

	switch args[0] {
	case "upload":
		domain := export.DomainLedger
		if len(args) > 1 {
			domain = args[1]
		}
		var data []byte
		switch domain {
		case export.DomainLedger:
			if !a.ready(ctx) {
				return nil
			}
			r := a.ledger.Export()
			if !report(a, r, "") {
				return r.Err()
			}
			data = r.Value()
		case export.DomainMemo:
			r := a.memos.Export()
			if !report(a, r, "") {
				return r.Err()
			}
			data = r.Value()
		default:
			a.println(backupUsage)
			return nil
		}

		key, url, err := a.remote.PresignBackupUpload(ctx, owner, export.BackupFilename(domain, now()))
		if err != nil {
			a.log.Error(ctx, "presign upload failed", "error", err)
			a.println("백업을 준비하지 못했습니다.")
			return err
		}
		if err := upload(ctx, url, data); err != nil {
			a.log.Error(ctx, "backup upload failed", "error", err)
			a.println("백업을 업로드하지 못했습니다.")
			return err
		}
		a.printf("백업 완료: %s\n", key)
		return nil

	case "download":
		if len(args) != 2 {
			a.println(backupUsage)
			return nil
		}
		key := args[1]
		url, err := a.remote.PresignBackupDownload(ctx, owner, key)
		if err != nil {
			a.log.Error(ctx, "presign download failed", "error", err)
			a.println("백업을 찾을 수 없습니다.")
			return err
		}
		data, err := download(ctx, url)
		if err != nil {
			a.log.Error(ctx, "backup download failed", "error", err)
			a.println("백업을 내려받지 못했습니다.")
			return err
		}
		if strings.HasPrefix(path.Base(key), export.DomainMemo+"-") {
			return a.importMemos(ctx, data)
		}
		if !a.ready(ctx) {
			return nil
		}
		return a.importLedger(ctx, data)
	}

	a.println(backupUsage)
	return nil
}

// MigrateLegacy imports the single-user ledger left by older versions into
// the signed-in account, after checking the old PIN when one was set.
func (a *App) MigrateLegacy(ctx context.Context, _ []string) error {
	if !a.ready(ctx) {
		return nil
	}

	has, err := a.legacy.HasPassword(ctx)
	if err != nil {
		a.log.Error(ctx, "legacy password lookup failed", "error", err)
		a.println("이전 데이터를 확인하지 못했습니다.")
		return err
	}
	if has {
		pin, err := GetPassword("이전 비밀번호", a.out)
		if err != nil {
			return err
		}
		if r := a.legacy.Unlock(ctx, pin); !report(a, r, "") {
			return r.Err()
		}
	}

	r := a.ledger.MigrateLegacy(ctx)
	if report(a, r, "") {
		rep := r.Value()
		a.printf("이전 내역 %d건을 옮겼습니다. (%d건 건너뜀)\n", rep.Imported, rep.Skipped)
	}
	return r.Err()
}
