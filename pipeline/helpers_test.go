package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"series-extract/dataset"
)

func newTable(t *testing.T, name string, header []string, rows ...[]string) *dataset.Table {
	t.Helper()
	table := dataset.NewTable(name, header)
	for _, row := range rows {
		require.NoError(t, table.Append(row))
	}
	return table
}

func column(t *testing.T, table *dataset.Table, name string) []string {
	t.Helper()
	values, err := table.Values(name)
	require.NoError(t, err)
	return values
}

// writeDataset writes gzip TSV fixtures, one per file name, into dir
func writeDataset(t *testing.T, dir string, files map[string][]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	for name, lines := range files {
		f, err := os.Create(filepath.Join(dir, name))
		require.NoError(t, err)
		zw := gzip.NewWriter(f)
		_, err = zw.Write([]byte(strings.Join(lines, "\n") + "\n"))
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		require.NoError(t, f.Close())
	}
}

// fringeDataset is a small IMDb-shaped dataset with one series and a decoy
func fringeDataset() map[string][]string {
	return map[string][]string{
		dataset.TitleBasics: {
			"tconst\ttitleType\tprimaryTitle\toriginalTitle\tisAdult\tstartYear\tendYear\truntimeMinutes\tgenres",
			"tt1119644\ttvSeries\tFringe\tFringe\t0\t2008\t2013\t46\tDrama,Mystery,Sci-Fi",
			"tt0000099\tmovie\tFringe\tFringe\t0\t2001\t\\N\t90\tDrama",
			"tt1\ttvEpisode\tPilot\tPilot\t0\t2008\t\\N\t81\tDrama",
			"tt2\ttvEpisode\tThe Same Old Story\tThe Same Old Story\t0\t2008\t\\N\t43\tDrama",
			"tt3\ttvEpisode\tA New Day in the Old Town\tA New Day in the Old Town\t0\t2009\t\\N\t43\tDrama",
			"tt9\ttvEpisode\tUnrelated\tUnrelated\t0\t2010\t\\N\t30\tComedy",
		},
		dataset.TitleEpisode: {
			"tconst\tparentTconst\tseasonNumber\tepisodeNumber",
			"tt3\ttt1119644\t2\t1",
			"tt2\ttt1119644\t1\t2",
			"tt9\ttt7777777\t1\t1",
			"tt1\ttt1119644\t1\t1",
		},
		dataset.TitleRatings: {
			"tconst\taverageRating\tnumVotes",
			"tt1\t8.5\t5000",
			"tt9\t6.0\t10",
			"tt3\t8.1\t3000",
		},
		dataset.TitleCrew: {
			"tconst\tdirectors\twriters",
			"tt1\tnm10,nm11\tnm20",
			"tt2\tnm10\t\\N",
			"tt9\tnm99\tnm98",
		},
		dataset.TitlePrincipals: {
			"tconst\tordering\tnconst\tcategory\tjob\tcharacters",
			"tt1\t1\tnm1\tactress\t\\N\t[\"Olivia Dunham\"]",
			"tt1\t2\tnm2\tactor\t\\N\t[\"Peter Bishop\"]",
			"tt1\t3\tnm10\tdirector\t\\N\t\\N",
			"tt2\t1\tnm1\tactress\t\\N\t[\"Olivia Dunham\"]",
			"tt9\t1\tnm97\tactor\t\\N\t[\"Someone\"]",
		},
		dataset.NameBasics: {
			"nconst\tprimaryName\tbirthYear\tdeathYear\tprimaryProfession\tknownForTitles",
			"nm1\tAnna Torv\t1978\t\\N\tactress\ttt1119644",
			"nm2\tJoshua Jackson\t1978\t\\N\tactor\ttt1119644",
			"nm10\tAlex Graves\t1965\t\\N\tdirector\ttt1119644",
			"nm11\tJ.J. Abrams\t1966\t\\N\tdirector\ttt1119644",
			"nm20\tAlex Kurtzman\t1973\t\\N\twriter\ttt1119644",
			"nm97\tNobody\t\\N\t\\N\tactor\t\\N",
			"nm99\tOther Director\t\\N\t\\N\tdirector\t\\N",
		},
	}
}
