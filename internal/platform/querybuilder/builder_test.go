package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("provider_league_id", "season").
		From("crawl_checkpoints").
		Where(Eq("provider", "apifootball"), In("status", []any{"new", "running"})).
		OrderBy("provider_league_id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT provider_league_id, season FROM crawl_checkpoints WHERE provider = $1 AND status IN ($2, $3) ORDER BY provider_league_id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "apifootball" || args[1] != "new" || args[2] != "running" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderEmptyIn(t *testing.T) {
	query, args, err := Select("id").
		From("raw_api_responses").
		Where(In("endpoint", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM raw_api_responses WHERE 1=0"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("raw_api_responses").
		Columns("provider", "endpoint", "response_hash").
		Values("apifootball", "fixtures", "abc123").
		Suffix("ON CONFLICT (provider, endpoint, response_hash) DO NOTHING RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO raw_api_responses (provider, endpoint, response_hash) VALUES ($1, $2, $3) ON CONFLICT (provider, endpoint, response_hash) DO NOTHING RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilderSuffixPlaceholders(t *testing.T) {
	query, args, err := InsertInto("t").
		Columns("a").
		Values(1).
		Suffix("ON CONFLICT (a) DO UPDATE SET b = ?").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	// Suffix placeholders are only rewritten when the suffix carries
	// its own args, so a bare suffix passes through untouched.
	wantQuery := "INSERT INTO t (a) VALUES ($1) ON CONFLICT (a) DO UPDATE SET b = ?"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		Provider string `db:"provider"`
		Endpoint string `db:"endpoint"`
		Skipped  string `db:"-"`
		NoTag    string
	}

	query, args, err := InsertModel("raw_api_responses", row{Provider: "apifootball", Endpoint: "teams"}, "RETURNING id")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO raw_api_responses (provider, endpoint) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "apifootball" || args[1] != "teams" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModelRejectsNonStruct(t *testing.T) {
	if _, _, err := InsertModel("t", 42, ""); err == nil {
		t.Fatal("expected error for non-struct model")
	}
	var ptr *struct {
		A string `db:"a"`
	}
	if _, _, err := InsertModel("t", ptr, ""); err == nil {
		t.Fatal("expected error for nil pointer model")
	}
}
