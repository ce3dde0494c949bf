package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/backdeck/backdeck/internal/backdrop"
)

func (m Model) openBlocks() (tea.Model, tea.Cmd) {
	m.view = ViewBlocks
	if m.blocks.loaded {
		return m, nil
	}
	m.blocks.loading = true
	return m, m.fetchBlocksCmd()
}

func (m Model) fetchBlocksCmd() tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		blocks, err := client.ListBlocks(ctx)
		return blocksLoadedMsg{blocks: blocks, err: err}
	}
}

func (m Model) handleBlocksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "R":
		m.blocks.loading = true
		return m, m.fetchBlocksCmd()
	case "J":
		return m, m.moveBlockCmd(1)
	case "K":
		return m, m.moveBlockCmd(-1)
	case "x":
		block, ok := m.selectedBlock()
		if !ok {
			return m, nil
		}
		m.confirm = &confirmState{
			prompt: fmt.Sprintf("Disable block %q?", block.Title),
			action: m.disableBlockCmd(block.ID),
		}
		return m, nil
	}

	m.blocks.selected = navigate(key, m.blocks.selected, len(m.blocks.blocks))
	return m, nil
}

func (m Model) selectedBlock() (backdrop.Block, bool) {
	if m.blocks.selected < 0 || m.blocks.selected >= len(m.blocks.blocks) {
		return backdrop.Block{}, false
	}
	return m.blocks.blocks[m.blocks.selected], true
}

// moveBlockCmd shifts the selected block one slot within its region and
// submits the region's full new order.
func (m Model) moveBlockCmd(delta int) tea.Cmd {
	block, ok := m.selectedBlock()
	if !ok {
		return nil
	}

	var order []string
	pos := -1
	for _, b := range m.blocks.blocks {
		if b.Region != block.Region {
			continue
		}
		if b.ID == block.ID {
			pos = len(order)
		}
		order = append(order, b.ID)
	}
	next := pos + delta
	if pos < 0 || next < 0 || next >= len(order) {
		return nil
	}
	order[pos], order[next] = order[next], order[pos]

	client, ctx := m.client, m.ctx
	reload := m.fetchBlocksCmd()
	region := block.Region
	return func() tea.Msg {
		message, err := client.ReorderBlocks(ctx, region, order)
		return actionResultMsg{message: message, err: err, reload: reload}
	}
}

func (m Model) disableBlockCmd(id string) tea.Cmd {
	client, ctx := m.client, m.ctx
	reload := m.fetchBlocksCmd()
	return func() tea.Msg {
		message, err := client.DisableBlock(ctx, id)
		return actionResultMsg{message: message, err: err, reload: reload}
	}
}

func (m Model) renderBlockList() string {
	if m.blocks.loading {
		return m.renderLoading("blocks")
	}
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString("\n")
	if len(m.blocks.blocks) == 0 {
		b.WriteString("  ")
		b.WriteString(styles.MutedText.Render("no blocks"))
		b.WriteString("\n")
		return b.String()
	}

	region := ""
	for i, block := range m.blocks.blocks {
		if block.Region != region {
			region = block.Region
			b.WriteString("  ")
			b.WriteString(styles.AccentText.Render(region))
			b.WriteString("\n")
		}
		state := styles.SuccessText.Render("on ")
		if !block.Enabled {
			state = styles.FaintText.Render("off")
		}
		line := fmt.Sprintf("    %s  %s  %s",
			state,
			padRight(block.Title, 32),
			styles.FaintText.Render(block.Module))
		if i == m.blocks.selected {
			b.WriteString(styles.Selected.Width(m.width).Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(styles.FaintText.Render("J/K move within region · x disable · R reload"))
	b.WriteString("\n")
	return b.String()
}
