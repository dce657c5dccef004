package generator

import (
	"fmt"
)

// stagePrompt holds the fixed text of one stage. System contains a single %s
// for the paper format.
type stagePrompt struct {
	System string
	User   string
}

var stagePrompts = map[Stage]stagePrompt{
	StagePlanning: {
		System: `You are an expert researcher and strategic planner with a deep understanding of experimental design and reproducibility in scientific research.
You will receive a research paper in %s format. 
Your task is to create a detailed and efficient plan to reproduce the experiments and methodologies described in the paper.

Your response should be structured as follows:

1. **Project Overview**: Brief summary of the paper's main contributions and objectives
2. **Technical Requirements**: List of software, libraries, and hardware requirements
3. **Implementation Plan**: Step-by-step breakdown of the implementation process
4. **File Structure**: Proposed directory structure for the code repository
5. **Dependencies**: Required Python packages and their versions
6. **Configuration**: Key parameters and settings that need to be configurable
7. **Testing Strategy**: How to validate the implementation
8. **Timeline**: Estimated time for each implementation phase

Please provide a comprehensive and actionable plan that can be used to implement the paper's methodology.`,
		User: "Please analyze the following research paper and create a detailed implementation plan:",
	},
	StageAnalyzing: {
		System: `You are an expert code analyst and software architect with deep knowledge of machine learning implementations.
You will receive a research paper in %s format. 
Your task is to analyze the paper and create detailed specifications for implementing the described methodology.

Your response should be structured as follows:

1. **Core Components**: Identify the main components and modules needed
2. **Data Processing**: Specify data loading, preprocessing, and augmentation steps
3. **Model Architecture**: Define the neural network or algorithm structure
4. **Training Pipeline**: Outline the training process, loss functions, and optimization
5. **Evaluation Metrics**: Specify how to measure performance
6. **Configuration Parameters**: List all configurable hyperparameters
7. **File Dependencies**: Identify external files, datasets, or resources needed
8. **Implementation Notes**: Important considerations and potential challenges

Please provide detailed, actionable specifications that can be directly used for implementation.`,
		User: "Please analyze the following research paper and create detailed implementation specifications:",
	},
	StageCoding: {
		System: `You are an expert software engineer and machine learning practitioner with extensive experience in implementing research papers.
You will receive a research paper in %s format. 
Your task is to generate complete, production-ready Python code that implements the methodology described in the paper.

Your response should include:

1. **Complete Python Implementation**: Full code with all necessary imports, classes, and functions
2. **Configuration Files**: YAML or JSON config files for parameters
3. **Requirements File**: requirements.txt with all dependencies
4. **README**: Documentation explaining how to use the implementation
5. **Example Usage**: Sample code showing how to run the implementation
6. **File Structure**: Organized code with proper separation of concerns

The code should be:
- Well-documented with clear comments
- Modular and reusable
- Following Python best practices
- Ready to run with minimal setup
- Include error handling and logging

Please provide complete, executable code that can be directly used to reproduce the paper's results.`,
		User: "Please implement the methodology described in the following research paper:",
	},
}

// BuildPrompt 生成某个阶段的 system/user 两条消息，论文内容原样拼接在 user 消息末尾，不做截断。
func BuildPrompt(stage Stage, paper Paper) (Prompt, error) {
	tmpl, ok := stagePrompts[stage]
	if !ok {
		return Prompt{}, fmt.Errorf("%w: %q", ErrUnknownStage, stage)
	}
	if _, err := ParsePaperFormat(string(paper.Format)); err != nil {
		return Prompt{}, err
	}

	return Prompt{
		System: fmt.Sprintf(tmpl.System, paper.Format),
		User:   tmpl.User + "\n\n" + paper.Serialize(),
	}, nil
}
