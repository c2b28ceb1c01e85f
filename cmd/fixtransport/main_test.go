// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/fixtransport/pkg/patch"
)

const multiChatBefore = `import type { Message as UIMessage } from "@ai-sdk/ui-utils"
import { useChat } from "@ai-sdk/react"
import { DefaultChatTransport } from "ai"

export function useMultiChat() {
  const chatHook = useChat({
    transport: new DefaultChatTransport({ api: "/api/chat" }),
  })

  const send = (message: unknown) => {
    chatHook.sendMessage(message as UIMessage)
    chatHook.sendMessage({ text: (message as any).content || "" })
  }

  return { chatHook, send }
}
`

const multiChatAfter = `import type { UIMessage, Message } from "@/lib/ai-sdk-types"
import { useChat } from "@ai-sdk/react"
import { DefaultChatTransport } from "ai"

export function useMultiChat() {
  const chatHook = useChat({
    api: "/api/chat",
  })

  const send = (message: unknown) => {
    chatHook.append(message as UIMessage)
    chatHook.append({ role: "user", content: (message as any).content || "" } as UIMessage)
  }

  return { chatHook, send }
}
`

const projectViewBefore = `import { generateId } from "ai"
import { useChat } from "@ai-sdk/react"

export function ProjectView() {
  const { messages, sendMessage,
    regenerate, status } = useChat({
    transport: new DefaultChatTransport({ api: API_ROUTE_CHAT }),
  })
}
`

const projectViewAfter = `import { generateId } from "ai"
import type { UIMessage, Message } from "@/lib/ai-sdk-types"
import { useChat } from "@ai-sdk/react"

export function ProjectView() {
  const { messages, append, reload, status } = useChat({
    api: API_ROUTE_CHAT,
  })
}
`

// rebasedJobs returns the built-in jobs pointed at fixture files under a temp dir
func rebasedJobs(t *testing.T, contents ...string) []patch.Job {
	t.Helper()
	jobs, err := builtinJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, contents, len(jobs))

	dir := t.TempDir()
	for i := range jobs {
		jobs[i].Path = filepath.Join(dir, filepath.Base(jobs[i].Path))
		if contents[i] != "" {
			require.NoError(t, os.WriteFile(jobs[i].Path, []byte(contents[i]), 0644))
		}
	}
	return jobs
}

func executeRoot(t *testing.T, jobs []patch.Job, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := newRootCmd(&rootOpts{
		stdout: stdout,
		stderr: stderr,
		jobs: func(ctx context.Context) ([]patch.Job, error) {
			return jobs, nil
		},
	})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestBuiltinJobs(t *testing.T) {
	jobs, err := builtinJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "/Users/duet/project/okie/okie.one/app/components/multi-chat/use-multi-chat.ts", jobs[0].Path)
	assert.Len(t, jobs[0].Substitutions, 4)
	assert.Equal(t, "/Users/duet/project/okie/okie.one/app/p/[projectId]/project-view.tsx", jobs[1].Path)
	assert.Len(t, jobs[1].Substitutions, 3)
}

func TestBuiltinScenarios(t *testing.T) {
	jobs, err := builtinJobs(context.Background())
	require.NoError(t, err)

	tests := []struct {
		name  string
		job   int
		input string
		want  string
	}{
		{
			name:  "transport_option",
			job:   0,
			input: `transport: new DefaultChatTransport({ api: "/api/chat" })`,
			want:  `api: "/api/chat"`,
		},
		{
			name:  "send_message",
			job:   0,
			input: `chatHook.sendMessage(message as UIMessage)`,
			want:  `chatHook.append(message as UIMessage)`,
		},
		{
			name:  "type_import",
			job:   0,
			input: `import type { Message as UIMessage } from "@ai-sdk/ui-utils"`,
			want:  `import type { UIMessage, Message } from "@/lib/ai-sdk-types"`,
		},
		{
			name:  "project_transport_option",
			job:   1,
			input: `transport: new DefaultChatTransport({ api: API_ROUTE_CHAT })`,
			want:  `api: API_ROUTE_CHAT`,
		},
		{
			name:  "generate_id_import_at_end_of_file",
			job:   1,
			input: `import { generateId } from "ai"`,
			want:  "import { generateId } from \"ai\"\nimport type { UIMessage, Message } from \"@/lib/ai-sdk-types\"",
		},
		{
			name:  "destructured_hooks",
			job:   1,
			input: "sendMessage,\n\t\tregenerate",
			want:  "append, reload",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := patch.Apply(tt.input, jobs[tt.job].Substitutions)
			assert.Equal(t, tt.want, got)

			again, _ := patch.Apply(got, jobs[tt.job].Substitutions)
			assert.Equal(t, got, again, "second pass should be a no-op")
		})
	}
}

func TestRootCommand(t *testing.T) {
	t.Run("patches_both_files", func(t *testing.T) {
		jobs := rebasedJobs(t, multiChatBefore, projectViewBefore)

		stdout, _, err := executeRoot(t, jobs)
		require.NoError(t, err)
		assert.Equal(t, "Fixed "+jobs[0].Path+"\nFixed "+jobs[1].Path+"\n", stdout)

		got, err := os.ReadFile(jobs[0].Path)
		require.NoError(t, err)
		assert.Equal(t, multiChatAfter, string(got))

		got, err = os.ReadFile(jobs[1].Path)
		require.NoError(t, err)
		assert.Equal(t, projectViewAfter, string(got))
	})

	t.Run("second_run_is_noop", func(t *testing.T) {
		jobs := rebasedJobs(t, multiChatBefore, projectViewBefore)

		_, _, err := executeRoot(t, jobs)
		require.NoError(t, err)
		stdout, _, err := executeRoot(t, jobs)
		require.NoError(t, err)
		assert.Equal(t, "Fixed "+jobs[0].Path+"\nFixed "+jobs[1].Path+"\n", stdout)

		got, err := os.ReadFile(jobs[0].Path)
		require.NoError(t, err)
		assert.Equal(t, multiChatAfter, string(got))

		got, err = os.ReadFile(jobs[1].Path)
		require.NoError(t, err)
		assert.Equal(t, projectViewAfter, string(got))
	})

	t.Run("missing_first_file_stops_run", func(t *testing.T) {
		jobs := rebasedJobs(t, "", projectViewBefore)

		stdout, _, err := executeRoot(t, jobs)
		require.Error(t, err)
		assert.ErrorIs(t, err, patch.ErrNotFound)
		assert.Empty(t, stdout)
		assert.NoFileExists(t, jobs[0].Path)

		got, err := os.ReadFile(jobs[1].Path)
		require.NoError(t, err)
		assert.Equal(t, projectViewBefore, string(got), "second job must not run")
	})

	t.Run("missing_second_file_keeps_first", func(t *testing.T) {
		jobs := rebasedJobs(t, multiChatBefore, "")

		stdout, _, err := executeRoot(t, jobs)
		require.Error(t, err)
		assert.ErrorIs(t, err, patch.ErrNotFound)
		assert.Equal(t, "Fixed "+jobs[0].Path+"\n", stdout)

		got, err := os.ReadFile(jobs[0].Path)
		require.NoError(t, err)
		assert.Equal(t, multiChatAfter, string(got))
	})

	t.Run("debug_logs_to_stderr", func(t *testing.T) {
		jobs := rebasedJobs(t, multiChatBefore, projectViewBefore)

		stdout, stderr, err := executeRoot(t, jobs, "--debug")
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(stdout, "\n"), "stdout carries only the confirmation lines")
		assert.Contains(t, stderr, "substitution applied")
	})

	t.Run("rejects_arguments", func(t *testing.T) {
		jobs := rebasedJobs(t, multiChatBefore, projectViewBefore)

		stdout, _, err := executeRoot(t, jobs, "some/other/file.ts")
		require.Error(t, err)
		assert.Empty(t, stdout)
	})
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeRoot(t, nil, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "fixtransport version info:\n"))
	assert.Contains(t, stdout, "Go:")
}

func TestVersionInfoString(t *testing.T) {
	got := versionInfo{
		Version:   "v1.2.3",
		Revision:  "abc123",
		Time:      "2025-01-01T00:00:00Z",
		Modified:  true,
		GoVersion: "go1.23.5",
		Platform:  "linux/amd64",
	}.String()
	assert.Contains(t, got, "Version:   v1.2.3\n")
	assert.Contains(t, got, "Revision:  abc123 (modified)\n")
	assert.Contains(t, got, "Platform:  linux/amd64\n")
}
