package config

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type testCaseData struct {
	name                 string
	contents             []string
	envVars              map[string]string
	expectedMerged       string
	expectedRenderConfig string
	expectedError        error
}

func TestConfigRenderMerge(t *testing.T) {
	var tests = []testCaseData{
		{
			name:                 "Merge 2 elements",
			contents:             []string{"A=1\n", "B=2\n"},
			expectedRenderConfig: "A = 1\nB = 2\n",
		},
		{
			name:                 "Merge 3 elements, overlapped",
			contents:             []string{"A=1\n", "A=2\nB=2\n", "A=3\nC=3\n"},
			expectedRenderConfig: "A = 3\nB = 2\nC = 3\n",
		},
		{
			name:          "Merge 3 elements, overlapped final var",
			contents:      []string{"A=1\n", "A=2\nB=2\n", "A=\"{{VAR}}\"\nC=3\n"},
			expectedError: ErrMissingVars,
		},
	}
	executeCases(t, tests)
}

func TestConfigRenderResolveVars(t *testing.T) {
	var tests = []testCaseData{
		{
			name:                 "Var defined in another file",
			contents:             []string{"Path = \"/data\"\n", "[State]\nDBPath = \"{{Path}}/state.sqlite\"\n"},
			expectedRenderConfig: "Path = \"/data\"\n\n[State]\n  DBPath = \"/data/state.sqlite\"\n",
		},
		{
			name:                 "Var overridden by a later file",
			contents:             []string{"Path = \"/data\"\nDB = \"{{Path}}/db\"\n", "Path = \"/other\"\n"},
			expectedRenderConfig: "DB = \"/other/db\"\nPath = \"/other\"\n",
		},
		{
			name:                 "Chained vars",
			contents:             []string{"A = \"{{B}}\"\n", "B = \"{{C}}\"\nC = \"x\"\n"},
			expectedRenderConfig: "A = \"x\"\nB = \"x\"\nC = \"x\"\n",
		},
		{
			name:                 "Nested key as var",
			contents:             []string{"[Net]\nHost = \"h\"\n", "URL = \"http://{{Net.Host}}\"\n"},
			expectedRenderConfig: "URL = \"http://h\"\n\n[Net]\n  Host = \"h\"\n",
		},
		{
			name:                 "Env var has precedence",
			contents:             []string{"Path = \"/data\"\nDB = \"{{Path}}/db\"\n"},
			envVars:              map[string]string{"UTCR_Path": "/env"},
			expectedRenderConfig: "DB = \"/env/db\"\nPath = \"/data\"\n",
		},
		{
			name:                 "Env var resolves undefined var",
			contents:             []string{"DB = \"{{Path}}/db\"\n"},
			envVars:              map[string]string{"UTCR_Path": "/env"},
			expectedRenderConfig: "DB = \"/env/db\"\n",
		},
	}
	executeCases(t, tests)
}

func TestConfigRenderDetectCycle(t *testing.T) {
	var tests = []testCaseData{
		{
			name:           "Cycle 3 elements",
			contents:       []string{"A = \"{{B}}\"\n", "B = \"{{C}}\"\nC = \"{{A}}\"\n"},
			expectedMerged: "A = \"{{B}}\"\nB = \"{{C}}\"\nC = \"{{A}}\"\n",
			expectedError:  ErrCycleVars,
		},
		{
			name:          "Cycle 2 elements",
			contents:      []string{"A = \"{{B}}\"\n", "B = \"{{A}}\"\n"},
			expectedError: ErrCycleVars,
		},
		{
			name:          "Self reference",
			contents:      []string{"A = \"a{{A}}\"\n"},
			expectedError: ErrCycleVars,
		},
	}
	executeCases(t, tests)
}

func TestGetVars(t *testing.T) {
	require.Equal(t, []string{"A", "B.C"}, GetVars("x = \"{{ B.C }}{{A}}\"\ny = \"{{A}}\""))
	require.Empty(t, GetVars("x = \"{}\""))
}

func TestConfigRenderConvertFileToToml(t *testing.T) {
	jsonFile := `{
  "PathRWData": "/data",
  "State": {
    "Engine": "memory"
  },
  "Verifier": {
    "Threshold": 3
  }
}
`
	data, err := convertFileToToml(jsonFile, "json")
	require.NoError(t, err)
	require.Equal(t, "PathRWData = \"/data\"\n\n[State]\n  Engine = \"memory\"\n\n[Verifier]\n  Threshold = 3.0\n", data)

	_, err = convertFileToToml("a: 1", "yaml")
	require.ErrorIs(t, err, ErrUnsupportedConfigFileType)
}

type configRenderTestData struct {
	Sut     *ConfigRender
	EnvMock *osLookupEnvMock
}

func newConfigRenderTestData(data []string) configRenderTestData {
	envMock := &osLookupEnvMock{
		Env: map[string]string{},
	}
	filesData := make([]FileData, len(data))
	for i, d := range data {
		filesData[i] = FileData{Name: fmt.Sprintf("file%d", i), Content: d}
	}
	return configRenderTestData{
		EnvMock: envMock,
		Sut: &ConfigRender{
			FilesData:         filesData,
			LookupEnvFunc:     envMock.LookupEnv,
			EnvironmentPrefix: "UTCR",
		},
	}
}

type osLookupEnvMock struct {
	Env map[string]string
}

func (m *osLookupEnvMock) LookupEnv(key string) (string, bool) {
	val, exists := m.Env[key]
	return val, exists
}

func executeCases(t *testing.T, tests []testCaseData) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testData := newConfigRenderTestData(tt.contents)
			if tt.envVars != nil {
				testData.EnvMock.Env = tt.envVars
			}
			if tt.expectedMerged != "" {
				merged, err := testData.Sut.Merge()
				require.NoError(t, err)
				require.Equal(t, tt.expectedMerged, merged)
			}
			res, err := testData.Sut.Render()
			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
			}
			if len(tt.expectedRenderConfig) > 0 {
				require.Equal(t, tt.expectedRenderConfig, res)
			}
		})
	}
}
