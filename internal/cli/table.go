package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roboco-io/eventdesk/internal/dataset"
	"github.com/roboco-io/eventdesk/internal/render"
	"github.com/roboco-io/eventdesk/internal/table"
	"github.com/roboco-io/eventdesk/internal/tui"
)

// viewOptions are the table view flags shared by table and fetch.
type viewOptions struct {
	filter      string
	sorts       []string
	page        int
	pageSize    int
	columns     []string
	interactive bool
}

func (o *viewOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.filter, "filter", "", "검색어 (대소문자 구분, 표시 열 대상)")
	cmd.Flags().StringArrayVar(&o.sorts, "sort", nil, "정렬 열 (반복 지정 시 오름차순 → 내림차순 → 해제)")
	cmd.Flags().IntVar(&o.page, "page", 1, "페이지 번호 (1부터 시작)")
	cmd.Flags().IntVar(&o.pageSize, "page-size", 0, "페이지 크기 (기본: 설정값)")
	cmd.Flags().StringSliceVar(&o.columns, "columns", nil, "표시할 열 (쉼표로 구분)")
	cmd.Flags().BoolVarP(&o.interactive, "interactive", "i", false, "대화형 보기")
}

var tableView viewOptions

var tableCmd = &cobra.Command{
	Use:   "table <file>",
	Short: "데이터 파일을 표로 표시",
	Long: `JSON, YAML 또는 CSV 데이터 파일을 정렬, 검색, 페이지 단위로 표시합니다.

같은 열을 --sort로 반복 지정하면 오름차순, 내림차순, 정렬 해제 순으로 바뀝니다.
검색 또는 페이지 크기를 바꾸면 첫 페이지로 이동합니다.

환경 변수:
  EVENTDESK_PAGE_SIZE=n   기본 페이지 크기

예시:
  eventdesk table events.json
  eventdesk table events.yaml --sort start_date --sort start_date
  eventdesk table events.csv --filter Seoul --page 2 --page-size 5
  eventdesk table events.json --columns name,city -i`,
	Args: cobra.ExactArgs(1),
	RunE: runTable,
}

func init() {
	tableView.bind(tableCmd)
	rootCmd.AddCommand(tableCmd)
}

func runTable(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	ds, err := dataset.Load(args[0])
	if err != nil {
		return a.fail("데이터", fmt.Errorf("데이터 로드 실패: %w", err))
	}
	a.log.Debug().Str("file", args[0]).Int("rows", len(ds.Rows)).Msg("dataset loaded")

	return showDataset(cmd, a, filepath.Base(args[0]), ds, tableView)
}

// showDataset applies the view options to ds and prints one page, or opens
// the interactive browser.
func showDataset(cmd *cobra.Command, a *app, title string, ds *dataset.Dataset, o viewOptions) error {
	if len(o.columns) > 0 {
		selected, err := ds.Select(o.columns)
		if err != nil {
			return a.fail("데이터", err)
		}
		ds = selected
	}

	engine, err := table.New(ds.Columns, a.cfg.Table.EngineConfig())
	if err != nil {
		return a.fail("표", fmt.Errorf("표 초기화 실패: %w", err))
	}

	state, err := applyView(engine, ds.Rows, o, cmd.Flags().Changed("page-size"))
	if err != nil {
		return a.fail("표", err)
	}

	if o.interactive {
		final, err := tui.Run(commandContext(cmd), tui.New(title, engine, ds.Rows, state))
		if err != nil {
			return a.fail("표", err)
		}
		a.log.Debug().Int("page", final.PageIndex).Str("sort", final.SortColumn).Msg("browser closed")
		return nil
	}

	res := engine.Derive(ds.Rows, state)
	if err := render.TableView(cmd.OutOrStdout(), engine.Columns(), res, state); err != nil {
		return a.fail("표", err)
	}
	return nil
}

// applyView replays the flag transitions in the order a user would: page
// size, filter, sorts, then the page number.
func applyView(engine *table.Engine, rows []table.Row, o viewOptions, pageSizeSet bool) (table.State, error) {
	state := engine.DefaultState()

	var err error
	if pageSizeSet {
		if state, err = engine.SetPageSize(state, o.pageSize); err != nil {
			return state, fmt.Errorf("잘못된 페이지 크기: %w", err)
		}
	}

	state = engine.SetGlobalFilter(state, o.filter)

	for _, col := range o.sorts {
		if state, err = engine.SetSort(state, col); err != nil {
			return state, fmt.Errorf("정렬 실패: %w", err)
		}
	}

	if o.page < 1 {
		return state, fmt.Errorf("페이지 번호는 1 이상이어야 합니다: %d", o.page)
	}
	total := engine.Derive(rows, state).TotalPages
	if state, err = engine.GotoPage(state, o.page-1, total); err != nil {
		return state, err
	}
	return state, nil
}
